package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/download"
	"github.com/Syuf1514/video-labeler/internal/paths"
)

func (a *app) newDownloadCmd() *cobra.Command {
	var (
		column string
		bin    string
	)
	cmd := &cobra.Command{
		Use:   "download <file.csv> <outdir>",
		Short: "Copy every video the table references into a directory",
		Long: "Read the distinct values of the URI column and stream them to\n" +
			"`gsutil -m cp -I <outdir>`.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, err := paths.Abs(args[0])
			if err != nil {
				return err
			}
			outDir, err := paths.Abs(args[1])
			if err != nil {
				return err
			}
			if err := a.openLog(); err != nil {
				return err
			}
			uris, err := download.ReadURIs(csvPath, column)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "downloading %d videos to %s\n", len(uris), outDir)
			d := &download.Downloader{Bin: bin, Output: cmd.ErrOrStderr(), Log: a.log}
			if err := d.Run(cmd.Context(), uris, outDir); err != nil {
				return sysErrorf("download: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", download.DefaultColumn, "column holding the video URIs")
	cmd.Flags().StringVar(&bin, "bin", "gsutil", "copy tool reading URIs from stdin")
	return cmd
}

// cmd/serve.go
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/course-match/course-match/api"
)

var (
	port      int
	uploadDir string
	serveOut  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching engine over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		server := api.NewServer(uploadDir, serveOut)
		if err := server.Run(fmt.Sprintf(":%d", port)); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 8080, "Listen port")
	serveCmd.Flags().StringVar(&uploadDir, "upload-dir", "uploads", "Directory for uploaded workbooks")
	serveCmd.Flags().StringVar(&serveOut, "output-dir", "outputs", "Directory for run outputs")

	rootCmd.AddCommand(serveCmd)
}

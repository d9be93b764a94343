// Package api hosts the matching service over HTTP: upload the two input
// workbooks, run the matcher, download the produced reports.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/course-match/course-match/match"
	"github.com/course-match/course-match/match/export"
	"github.com/course-match/course-match/match/ingest"
)

// Server wires the upload, run and download endpoints around the matcher.
type Server struct {
	uploadDir string
	outputDir string
	engine    *gin.Engine
}

// NewServer builds the gin engine with CORS enabled for the frontend.
func NewServer(uploadDir, outputDir string) *Server {
	s := &Server{uploadDir: uploadDir, outputDir: outputDir}
	engine := gin.New()
	engine.Use(gin.Recovery(), cors.Default())
	engine.POST("/api/run-matching", s.runMatching)
	engine.GET("/api/download/*file", s.download)
	s.engine = engine
	return s
}

// Handler exposes the routing tree, used by tests via httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run creates the working directories and serves on addr until failure.
func (s *Server) Run(addr string) error {
	for _, dir := range []string{s.uploadDir, s.outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	logrus.Infof("matching service listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) runMatching(c *gin.Context) {
	studentFile, err := c.FormFile("student_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing student_file"})
		return
	}
	courseFile, err := c.FormFile("course_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing course_file"})
		return
	}
	runName := filepath.Base(strings.TrimSpace(c.PostForm("run_name")))
	if runName == "" || runName == "." || runName == string(filepath.Separator) {
		runName = uuid.NewString()
	}

	studentPath := filepath.Join(s.uploadDir, filepath.Base(studentFile.Filename))
	coursePath := filepath.Join(s.uploadDir, filepath.Base(courseFile.Filename))
	if err := c.SaveUploadedFile(studentFile, studentPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.SaveUploadedFile(courseFile, coursePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	roster, err := ingest.ReadStudentWorkbook(studentPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	catalog, err := ingest.ReadCourseWorkbook(coursePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := match.NewMatcher(roster, catalog).Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	placed := match.BuildPlacedTable(result, roster, catalog)
	summary := match.BuildCourseSummary(result, roster, catalog)
	unplaced := match.BuildUnplacedTable(result, roster)

	outDir := filepath.Join(s.outputDir, runName)
	files, err := export.WriteReports(outDir, placed, summary, unplaced, roster.Depth())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, err := export.WriteTraceLog(outDir, result.Trace); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logrus.Infof("run %s: %d placed, %d unplaced", runName, len(placed), len(unplaced))
	c.JSON(http.StatusOK, gin.H{
		"students":      placedJSON(placed),
		"course_report": summaryJSON(summary),
		"unplaced":      unplacedJSON(unplaced),
		"output_files":  files,
	})
}

func (s *Server) download(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("file"), "/")
	cleaned := filepath.Clean(rel)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
		return
	}
	path := filepath.Join(s.outputDir, cleaned)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

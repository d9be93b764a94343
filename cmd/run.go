// cmd/run.go
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/course-match/course-match/match"
	"github.com/course-match/course-match/match/export"
	"github.com/course-match/course-match/match/ingest"
)

var (
	studentsPath string
	coursesPath  string
	scenarioPath string
	outputDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching over input workbooks or a scenario spec",
	Run: func(cmd *cobra.Command, args []string) {
		roster, catalog := loadInputs()

		logrus.Infof("matching %d students across %d courses (preference depth %d)",
			roster.Len(), catalog.Len(), roster.Depth())

		result, err := match.NewMatcher(roster, catalog).Run()
		if err != nil {
			logrus.Fatalf("Matching failed: %v", err)
		}

		placed := match.BuildPlacedTable(result, roster, catalog)
		summary := match.BuildCourseSummary(result, roster, catalog)
		unplaced := match.BuildUnplacedTable(result, roster)

		files, err := export.WriteReports(outputDir, placed, summary, unplaced, roster.Depth())
		if err != nil {
			logrus.Fatalf("Writing reports failed: %v", err)
		}
		logPath, err := export.WriteTraceLog(outputDir, result.Trace)
		if err != nil {
			logrus.Fatalf("Writing trace log failed: %v", err)
		}

		printSummary(summary, len(placed), len(unplaced))
		logrus.Infof("reports written: %s, %s", files.Students, files.CourseReport)
		if files.Unplaced != "" {
			logrus.Infof("unplaced report written: %s", files.Unplaced)
		}
		logrus.Infof("trace log written: %s", logPath)
	},
}

// loadInputs builds the roster and catalog from whichever source was
// given: a YAML scenario, or the two xlsx workbooks.
func loadInputs() (*match.Roster, *match.Catalog) {
	if scenarioPath != "" {
		spec, err := ingest.LoadScenarioSpec(scenarioPath)
		if err != nil {
			logrus.Fatalf("Loading scenario failed: %v", err)
		}
		roster, catalog, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Building scenario failed: %v", err)
		}
		return roster, catalog
	}
	if studentsPath == "" || coursesPath == "" {
		logrus.Fatal("Either --scenario or both --students and --courses are required")
	}
	roster, err := ingest.ReadStudentWorkbook(studentsPath)
	if err != nil {
		logrus.Fatalf("Reading student workbook failed: %v", err)
	}
	catalog, err := ingest.ReadCourseWorkbook(coursesPath)
	if err != nil {
		logrus.Fatalf("Reading course workbook failed: %v", err)
	}
	return roster, catalog
}

func printSummary(summary []match.CourseSummaryRow, placed, unplaced int) {
	fmt.Println("=== Matching Summary ===")
	fmt.Printf("Placed Students   : %d\n", placed)
	fmt.Printf("Unplaced Students : %d\n", unplaced)
	for _, row := range summary {
		fmt.Printf("%-30s : %d posted, %s remaining\n", row.CourseName, row.Posted, row.RemainingVacancies)
	}
}

func init() {
	runCmd.Flags().StringVar(&studentsPath, "students", "", "Student workbook (.xlsx)")
	runCmd.Flags().StringVar(&coursesPath, "courses", "", "Course workbook (.xlsx)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario spec (.yaml), replaces the workbooks")
	runCmd.Flags().StringVar(&outputDir, "output", "outputs", "Directory for report workbooks and the trace log")

	rootCmd.AddCommand(runCmd)
}

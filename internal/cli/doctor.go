package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/vburojevic/rlc/internal/config"
)

// DoctorCmd checks system requirements and configuration
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type       string        `json:"type"`
	Timestamp  string        `json:"timestamp"`
	Checks     []checkResult `json:"checks"`
	AllPassed  bool          `json:"all_passed"`
	ErrorCount int           `json:"error_count"`
	WarnCount  int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var checks []checkResult
	checks = append(checks, c.checkRos2(globals))
	checks = append(checks, c.checkGraph(ctx, globals))
	checks = append(checks, c.checkConfig())

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		if check.Status == "error" {
			errorCount++
		} else if check.Status == "warning" {
			warnCount++
		}
	}

	report := doctorReport{
		Type:       "doctor",
		Timestamp:  time.Now().Format(time.RFC3339),
		Checks:     checks,
		AllPassed:  errorCount == 0,
		ErrorCount: errorCount,
		WarnCount:  warnCount,
	}

	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(report)
	}

	fmt.Fprintln(globals.Stdout, "rlc Doctor")
	fmt.Fprintln(globals.Stdout, "==========")
	for _, check := range checks {
		marker := "ok"
		switch check.Status {
		case "warning":
			marker = "warn"
		case "error":
			marker = "FAIL"
		}
		fmt.Fprintf(globals.Stdout, "[%-4s] %s", marker, check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, ": %s", check.Message)
		}
		fmt.Fprintln(globals.Stdout)
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "       %s\n", check.Details)
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("%d check(s) failed", errorCount)
	}
	return nil
}

// checkRos2 verifies the ros2 binary is on the PATH
func (c *DoctorCmd) checkRos2(globals *Globals) checkResult {
	path, err := exec.LookPath(globals.Config.Ros2Path)
	if err != nil {
		return checkResult{
			Name:    "ros2 binary",
			Status:  "error",
			Message: fmt.Sprintf("%q not found", globals.Config.Ros2Path),
			Details: "Source your ROS 2 setup script or set ros2_path in .rlc.yaml",
		}
	}
	return checkResult{Name: "ros2 binary", Status: "ok", Message: path}
}

// checkGraph verifies the graph answers a node listing
func (c *DoctorCmd) checkGraph(ctx context.Context, globals *Globals) checkResult {
	svc := service(globals)
	nodes, err := svc.NodeNames(ctx)
	if err != nil {
		return checkResult{
			Name:    "graph query",
			Status:  "error",
			Message: err.Error(),
			Details: "Is the ROS 2 daemon running? Try 'ros2 daemon start'",
		}
	}
	if len(nodes) == 0 {
		return checkResult{
			Name:    "graph query",
			Status:  "warning",
			Message: "no nodes with logger-level control found",
		}
	}
	return checkResult{
		Name:    "graph query",
		Status:  "ok",
		Message: fmt.Sprintf("%d capable node(s)", len(nodes)),
	}
}

// checkConfig reports which config file is in effect
func (c *DoctorCmd) checkConfig() checkResult {
	path := config.ConfigFile()
	if path == "" {
		return checkResult{Name: "config file", Status: "ok", Message: "none (defaults in effect)"}
	}
	return checkResult{Name: "config file", Status: "ok", Message: path}
}

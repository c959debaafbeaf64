package magetasks

import "fmt"

// QualityCheck runs lint, tests and the build in order.
func QualityCheck() error {
	PrintH1Header("cifmt Quality Checks")

	if err := LintAll(); err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	if err := TestAll(); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	if err := BuildAll(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	PrintSuccess("Quality checks complete")
	return nil
}

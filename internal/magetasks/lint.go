package magetasks

import (
	"errors"
	"fmt"
)

// LintAll runs all linters. Optional linters that are not installed are
// skipped with a warning.
func LintAll() error {
	PrintH2Header("Lint")

	var errs []error
	if err := LintFormat(); err != nil {
		errs = append(errs, err)
	}
	if err := LintVet(); err != nil {
		errs = append(errs, err)
	}
	if err := LintGolangci(); err != nil && !IsCommandNotFound(err) {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when any file is not gofmt-formatted.
func LintFormat() error {
	files, err := output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if files != "" {
		return fmt.Errorf("files need gofmt:\n%s", files)
	}
	return nil
}

// LintVet runs go vet.
func LintVet() error {
	return Run("Go Vet", "go", "vet", "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	if err := Run("Golangci-lint", "golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		if IsCommandNotFound(err) {
			PrintWarning("Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		}
		return err
	}
	return nil
}

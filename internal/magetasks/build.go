package magetasks

import (
	"fmt"
	"os"
	"time"
)

// BuildAll builds the cifmt binary with version information from git.
func BuildAll() error {
	PrintH2Header("Build")

	ldflags := Ldflags(gitVersion(), gitCommit(), time.Now().UTC().Format(time.RFC3339))
	if err := Run("Go Build", "go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}

	PrintSuccess(fmt.Sprintf("Built: %s", BinPath))
	return nil
}

// Ldflags returns the linker flags that stamp internal/version.
func Ldflags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Clean removes build artifacts
func Clean() error {
	PrintH2Header("Clean")

	if err := os.RemoveAll("./bin"); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")

	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitVersion() string {
	v, err := output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil {
		return "dev"
	}
	return v
}

func gitCommit() string {
	c, err := output("git", "rev-parse", "HEAD")
	if err != nil {
		return "unknown"
	}
	return c
}

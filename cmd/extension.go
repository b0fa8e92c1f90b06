package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/Mattojjo/graphz/config"
)

// ExtensionPrefix is the prefix of external subcommand executables.
const ExtensionPrefix = "graphz-"

// RunExtension attempts to find and execute an external graphz-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The global flags are passed to the extension as the environment variables
// they override.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the environment variables set by the global flags.
func extensionEnv() []string {
	var env []string
	set := func(key, value string) {
		env = append(env, config.Prefix+"_"+key+"="+value)
	}
	if *registryFile != "" {
		set("REGISTRY_FILE", *registryFile)
	}
	if *tickInterval != 0 {
		set("TICK_INTERVAL", tickInterval.String())
	}
	if *logLevel != "" {
		set("LOG_LEVEL", *logLevel)
	}
	if *Verbose {
		set("LOG_LEVEL", "debug")
	}
	return env
}

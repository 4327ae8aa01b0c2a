//go:build !unix

package main

import "os"

// Without dup2 only writes through os.Stdout/os.Stderr are captured; runtime
// panic output still goes to the original stderr.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}

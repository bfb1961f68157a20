package safe

import "testing"

func TestRunExecutes(t *testing.T) {
	ran := false
	Run(func() { ran = true })
	if !ran {
		t.Fatal("fn did not run")
	}
}

func TestRunRecoversPanic(t *testing.T) {
	Run(func() { panic("boom") })
}

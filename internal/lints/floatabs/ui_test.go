package floatabs_test

import (
	"path/filepath"
	"testing"

	"epslint/internal/driver"
	"epslint/internal/testkit"
)

func TestUI(t *testing.T) {
	testkit.RunUI(t, filepath.Join("testdata", "ui"), driver.Options{})
}

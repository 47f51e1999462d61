package modals

import (
	"os"
	"testing"

	"github.com/nexara/nexara/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the default log file
	logger.Reset()
	logger.Init(os.DevNull)

	ModalWidth = 60
	ModalInputWidth = 50
	ModalInputCharLimit = 1024

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

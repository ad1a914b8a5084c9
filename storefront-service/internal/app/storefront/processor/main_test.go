package processor

import (
	"io"
	"os"
	"testing"

	"ecoluxe/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("storefront-service-test", "error", io.Discard)
	os.Exit(m.Run())
}

package cli

import (
	"bytes"
	"testing"

	"uadmin/internal/logging"
	"uadmin/internal/notify"

	"github.com/stretchr/testify/assert"
)

func TestLogNotification(t *testing.T) {
	t.Setenv("UADMIN_DEBUG", "")
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.SetOutput(nil)
		logging.SetVerbose(false)
	})

	center := notify.NewCenter(notify.OnNotify(logNotification))

	logging.SetVerbose(false)
	center.Notify("Usuario eliminado con éxito", notify.Success)
	assert.Empty(t, buf.String())

	logging.SetVerbose(true)
	center.Notify("Error al eliminar usuario", notify.Error)
	assert.Equal(t, "notify: error Error al eliminar usuario\n", buf.String())
}

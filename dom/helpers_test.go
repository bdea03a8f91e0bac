package dom

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestWindow() *Window {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWindow(WithLogger(logrus.NewEntry(log)))
}

type recordLog struct {
	records []*MutationRecord
}

func observe(t *testing.T, w *Window, target *Node, opts MutationObserverInit) *recordLog {
	t.Helper()
	log := &recordLog{}
	observer := w.NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		log.records = append(log.records, records...)
	})
	require.NoError(t, observer.Observe(target, opts))
	return log
}

func strPtr(s string) *string { return &s }

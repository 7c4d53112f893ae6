package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUI_UsesSimpleWithoutTTY(t *testing.T) {
	cmd, stdout, _ := newTestCmd()
	ui := NewUI(cmd, false)

	require.NoError(t, ui.Start(context.Background(), WithScanMode(), WithInteractive(true)))

	selecting, ok := ui.(*selectingUI)
	require.True(t, ok)
	assert.IsType(t, &SimpleUI{}, selecting.current())

	ui.DisplayHeader(context.Background(), "# header")
	assert.Equal(t, "# header\n", stdout.String())
}

func TestNewUI_SelectsTUIOnlyForInteractiveScan(t *testing.T) {
	cmd, _, _ := newTestCmd()
	ui := NewUI(cmd, true)
	selecting, ok := ui.(*selectingUI)
	require.True(t, ok)

	require.NoError(t, ui.Start(context.Background(), WithListMode(), WithInteractive(true)))
	assert.IsType(t, &SimpleUI{}, selecting.current())

	require.NoError(t, ui.Start(context.Background(), WithScanMode()))
	assert.IsType(t, &SimpleUI{}, selecting.current())
}

func TestNewStartConfig(t *testing.T) {
	called := false
	cfg := newStartConfig(WithListMode(), WithInteractive(true), WithCancel(func() { called = true }))

	assert.Equal(t, ModeList, cfg.mode)
	assert.True(t, cfg.interactive)
	require.NotNil(t, cfg.cancel)
	cfg.cancel()
	assert.True(t, called)
}

func TestIsTTY_Nil(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

package dap

import (
	"os"

	"github.com/neovim/go-client/nvim"
)

// EditorNotifier tells a running Neovim instance to re-read buffers whose
// backing files a run just rewrote. It only activates when
// NVIM_LISTEN_ADDRESS points at a live instance; everything it does is
// best-effort.
type EditorNotifier struct {
	v *nvim.Nvim
}

func NewEditorNotifier() *EditorNotifier {
	addr := os.Getenv("NVIM_LISTEN_ADDRESS")
	if addr == "" {
		return &EditorNotifier{}
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		log := GetLogger("editor")
		log.Debug().Err(err).Str("addr", addr).Msg("Could not reach Neovim")
		return &EditorNotifier{}
	}
	return &EditorNotifier{v: v}
}

// Refresh runs checktime so buffers for the given files pick up the new
// contents. A nil connection makes this a no-op.
func (n *EditorNotifier) Refresh(paths []string) {
	if n.v == nil || len(paths) == 0 {
		return
	}

	b := n.v.NewBatch()
	b.Command("checktime")
	if err := b.Execute(); err != nil {
		log := GetLogger("editor")
		log.Debug().Err(err).Msg("Buffer refresh failed")
	}
}

func (n *EditorNotifier) Close() {
	if n.v != nil {
		n.v.Close()
	}
}

package system

import (
	"github.com/asytuyf/genesis-vault/internal/cli"
	"github.com/asytuyf/genesis-vault/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Store:  ctx.Store,
		Ledger: ctx.Ledger,
		Syncer: ctx.Syncer,
		Outbox: ctx.Outbox,
		GitHub: ctx.GitHub,
	})
}

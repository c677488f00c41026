package board

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// pollEvents starts a goroutine to handle terminal events.
func (b *Board) pollEvents(ctx context.Context) chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer close(quit)

		defer func() {
			if r := recover(); r != nil {
				b.screen.Clear()
				fmt.Println(r)
				debug.PrintStack()
			}
		}()

		for {
			event := b.screen.PollEvent()
			if event == nil {
				return
			}

			// Check if we received a key event.
			ev, isEventKey := event.(*tcell.EventKey)
			if !isEventKey {
				continue
			}

			if !b.handleKey(ctx, ev) {
				return
			}
		}
	}()

	return quit
}

// handleKey applies a key press to the board. It returns false when the
// person asked to quit.
func (b *Board) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	keyType := ev.Key()

	if keyType == tcell.KeyRune {
		switch r := ev.Rune(); {
		case r == 'q':
			return false

		case r == 'n':
			b.newGame()
			return true

		case r == 's':
			b.toggleSound()
			return true

		case b.modalUp:
			b.closeModal()
			return true

		case r >= '0' && r <= '9':
			column := int(r - '0')
			if b.gameOver || !b.game.Board().IsLegal(column) {
				b.screen.Beep()
				return true
			}

			b.print(cellX(b.inputCol), padTop-1, "  ")
			b.inputCol = column
			b.userTurn(ctx)
			return true

		case r == ' ':
			b.userTurn(ctx)
			return true
		}

		return true
	}

	if b.modalUp {
		b.closeModal()
		return true
	}

	switch keyType {
	case tcell.KeyLeft:
		b.movePlayerPiece(dirLeft)

	case tcell.KeyRight:
		b.movePlayerPiece(dirRight)

	case tcell.KeyEnter, tcell.KeyDown:
		b.userTurn(ctx)
	}

	return true
}

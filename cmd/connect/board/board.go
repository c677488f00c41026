// Package board handles the terminal game board and all interactions.
package board

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth   = 5
	cellHeight  = 2
	boardWidth  = game.Cols*cellWidth + 1
	boardHeight = game.Rows * cellHeight
	padTop      = 4
	padLeft     = 1
)

const (
	hozTopRune = '━'
	hozBotRune = '▅'
	verRune    = '┃'
	space      = 32
)

const (
	dirLeft  = "left"
	dirRight = "right"
)

// Glyphs maps a disc symbol to what is drawn for it.
var Glyphs = map[rune]string{
	'X': "🔵",
	'O': "🔴",
}

// Board represents the game board and all its state. The first player uses
// the keyboard and the second player is chosen by the predictor.
type Board struct {
	game          *game.Game
	ai            *policy.Predictor
	screen        tcell.Screen
	style         tcell.Style
	inputCol      int
	lastWinnerMsg string
	lastAIMsg     string
	gameOver      bool
	modalUp       bool
	sound         bool
	delay         time.Duration
	speak         func(msg string)
}

// NewScreen constructs the terminal screen used by the board.
func NewScreen() (tcell.Screen, error) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}

	return screen, nil
}

// New contructs a game board over the screen and renders the board.
func New(screen tcell.Screen, g *game.Game, ai *policy.Predictor) (*Board, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	style := tcell.StyleDefault
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	board := Board{
		game:     g,
		ai:       ai,
		screen:   screen,
		style:    style,
		inputCol: game.Center,
		delay:    150 * time.Millisecond,
		speak:    speak,
	}

	board.drawInit()

	return &board, nil
}

// Game returns the game being played.
func (b *Board) Game() *game.Game {
	return b.game
}

// Shutdown tears down the game board.
func (b *Board) Shutdown() {
	b.screen.Fini()
}

// Run starts a goroutine to handle terminal events. The returned channel is
// closed when the person quits.
func (b *Board) Run(ctx context.Context) chan struct{} {
	return b.pollEvents(ctx)
}

func (b *Board) newGame() {
	b.game.Reset()
	b.inputCol = game.Center
	b.gameOver = false
	b.modalUp = false
	b.lastAIMsg = ""

	b.drawInit()
}

func (b *Board) drawInit() {
	b.drawEmptyGameBoard()
	b.applyBoardState()
}

func (b *Board) drawEmptyGameBoard() {
	b.screen.Clear()

	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGrey)

	for h := 0; h <= boardHeight; h++ {
		for w := 0; w < boardWidth; w++ {
			b.screen.SetContent(w+padLeft, h+padTop, space, nil, style)

			if h%cellHeight == 0 {
				b.screen.SetContent(w+padLeft, h+padTop, hozTopRune, nil, style)

				if h == boardHeight {
					b.screen.SetContent(w+padLeft, h+padTop, hozBotRune, nil, style)
				}
			}

			if w%cellWidth == 0 {
				b.screen.SetContent(w+padLeft, h+padTop, verRune, nil, style)
			}
		}
	}

	b.print(10, 1, "Connect 4 AI Version")
	b.print(0, boardHeight+padTop+1, "   0    1    2    3    4    5    6")

	b.print(boardWidth+3, padTop-3, "<n> new game      <q> quit game")
	b.print(boardWidth+3, padTop-2, "<0-6> drop disc   <s> sound on/off")
	b.print(boardWidth+3, padTop+1, "Last Winner:                   ")

	screenWidth, _ := b.screen.Size()

	b.drawBox(boardWidth+3, padTop+3, boardWidth+(screenWidth-boardWidth-2), padTop+3+10)
	b.print(boardWidth+4, padTop+3, " AI PLAYER ")
}

// applyBoardState draws every disc on the board without animation.
func (b *Board) applyBoardState() {
	board := b.game.Board()

	for row := range game.Rows {
		for col := range game.Cols {
			if disc, ok := board.Cell(row, col); ok {
				b.print(cellX(col), cellY(row), glyph(disc))
			}
		}
	}

	b.print(boardWidth+3, padTop+1, "Last Winner: "+b.lastWinnerMsg)
	b.printSound()
	b.printAI()

	if !b.gameOver {
		b.print(cellX(b.inputCol), padTop-1, glyph(b.game.CurrentPlayer().Disc()))
	}

	b.screen.Show()
}

func (b *Board) movePlayerPiece(direction string) {
	if b.gameOver {
		return
	}

	switch {
	case direction == dirLeft && b.inputCol == 0:
		return
	case direction == dirRight && b.inputCol == game.Cols-1:
		return
	}

	b.print(cellX(b.inputCol), padTop-1, "  ")

	switch direction {
	case dirLeft:
		b.inputCol--
	case dirRight:
		b.inputCol++
	}

	b.print(cellX(b.inputCol), padTop-1, glyph(b.game.CurrentPlayer().Disc()))
}

// userTurn drops the person's disc into the column under the marker and lets
// the AI answer.
func (b *Board) userTurn(ctx context.Context) {
	if b.gameOver || b.game.Turn() != game.PlayerOne {
		return
	}

	if !b.game.Board().IsLegal(b.inputCol) {
		b.screen.Beep()
		return
	}

	if over := b.dropPiece(b.inputCol); over {
		return
	}

	b.aiTurn(ctx)
}

func (b *Board) aiTurn(ctx context.Context) {
	b.lastAIMsg = "- RUNNING AI"
	b.printAI()

	player := b.game.CurrentPlayer()

	column, err := b.ai.PredictColumn(ctx, b.game.Board(), player.Disc().Symbol())
	if err != nil {
		b.lastAIMsg = err.Error()
		if errors.Is(err, policy.ErrNoLegalMoves) {
			b.lastAIMsg = "- NO LEGAL MOVES"
		}
		b.printAI()
		return
	}

	msg := fmt.Sprintf("I played column %d", column)
	b.lastAIMsg = fmt.Sprintf("- %s", msg)
	b.printAI()

	if b.sound {
		b.speak(msg)
	}

	b.print(cellX(b.inputCol), padTop-1, "  ")
	b.inputCol = column

	b.dropPiece(column)
}

// dropPiece places the current player's disc and reports if the game is
// over. The turn moves to the other player when it is not.
func (b *Board) dropPiece(column int) bool {
	player := b.game.CurrentPlayer()
	board := b.game.Board()

	row, ok := board.PlaceDisc(column, player.Disc())
	if !ok {
		return false
	}

	b.print(cellX(column), padTop-1, "  ")

	// Animate the disc falling into its row.
	g := glyph(player.Disc())
	for r := 0; r <= row; r++ {
		b.print(cellX(column), cellY(r), g)

		if r < row {
			if b.delay > 0 {
				time.Sleep(b.delay)
			}
			b.print(cellX(column), cellY(r), "  ")
		}
	}

	switch {
	case game.CheckWin(board, row, column):
		b.showWinner(fmt.Sprintf("%s (%s)", player, g))
		if b.sound {
			b.speak(fmt.Sprintf("%s wins", player))
		}
		return true

	case board.Full():
		b.showWinner("Tie Game")
		return true
	}

	b.game.SwitchTurn()

	b.inputCol = game.Center
	b.print(cellX(b.inputCol), padTop-1, glyph(b.game.CurrentPlayer().Disc()))

	return false
}

// showWinner displays a modal dialog box.
func (b *Board) showWinner(msg string) {
	b.lastWinnerMsg = msg
	b.gameOver = true
	b.modalUp = true

	b.screen.HideCursor()
	b.drawBox(5, 8, 33, 13)

	x := 19 - (runewidth.StringWidth(msg) / 2)
	b.print(x, 10, msg)
}

// closeModal closes the modal dialog box.
func (b *Board) closeModal() {
	b.modalUp = false

	b.drawInit()
}

func (b *Board) toggleSound() {
	b.sound = !b.sound
	b.printSound()
}

// drawBox draws an empty box on the screen.
func (b *Board) drawBox(x int, y int, width int, height int) {
	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			b.screen.SetContent(w, h, ' ', nil, b.style)
		}
	}

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			if h == y {
				b.screen.SetContent(w, h, '▀', nil, style)
			}
			if h == height-1 {
				b.screen.SetContent(w, h, '▄', nil, style)
			}
			if w == x || w == width-1 {
				b.screen.SetContent(w, h, '█', nil, style)
			}
		}
	}

	b.screen.Show()
}

func (b *Board) print(x, y int, str string) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		b.screen.SetContent(x, y, c, comb, b.style)
		x += w
	}
	b.screen.Show()
}

func (b *Board) printSound() {
	state := "off"
	if b.sound {
		state = "on "
	}

	b.print(boardWidth+3, padTop, "Sound: "+state)
}

func (b *Board) printAI() {
	screenWidth, _ := b.screen.Size()
	actWidth := (screenWidth - boardWidth - 9)

	row := boardWidth + 5
	col := padTop + 4

	for range 8 {
		for range actWidth {
			b.print(row, col, " ")
			row++
		}
		row = boardWidth + 5
		col++
	}

	row = boardWidth + 5
	col = padTop + 4

	scanner := bufio.NewScanner(strings.NewReader(b.lastAIMsg))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "CRLF" {
			col++
			row = boardWidth + 5
			continue
		}

		b.print(row, col, word)

		row += len(word) + 1
		if row >= boardWidth+actWidth-4 {
			col++
			row = boardWidth + 5
		}
	}
}

// =============================================================================

func cellX(col int) int {
	return padLeft + 2 + cellWidth*col
}

func cellY(row int) int {
	return padTop + 1 + cellHeight*row
}

func glyph(disc game.Disc) string {
	if g, exists := Glyphs[disc.Symbol()]; exists {
		return g
	}

	return disc.String()
}

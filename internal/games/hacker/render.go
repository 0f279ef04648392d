package hacker

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-hacker/internal/core"
)

const (
	cellW      = 3 // screen columns per grid column
	boardTop   = 2 // first screen row of the board box
	panelGap   = 2
	panelWidth = 22
)

var entityColors = map[Entity]core.Color{
	Player:      core.ColorPlayer,
	Destroyable: core.ColorThreat,
	Collectable: core.ColorLoot,
	Blocker:     core.ColorShield,
}

// boardRect returns the outline of the board box, player row included.
func (s *Session) boardRect(dst *core.Screen) core.Rect {
	size := s.game.Size()
	w := size*cellW + 2
	h := size + 3 // field, separator, player row, borders
	x := (dst.Width() - w - panelGap - panelWidth) / 2
	return core.NewRect(max(x, 0), boardTop, w, h)
}

// Render draws the board, score panel and any overlay.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.game == nil {
		return
	}

	board := s.boardRect(dst)
	layout := core.NewRect(board.X, board.Y, board.W+panelGap+panelWidth, board.H)
	if !layout.Fits(dst.Width(), dst.Height()) {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorNotice)
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue", core.ColorMuted)
		return
	}

	s.renderHUD(dst)
	s.renderBoard(dst, board)
	s.renderPanel(dst, board.Right()+panelGap, board.Y)

	switch {
	case s.game.HasLost():
		s.renderOverlay(dst, board, "Game Over", "Press R to restart")
	case s.game.HasWon():
		s.renderOverlay(dst, board, "You Win!", "Press R to play again")
	case s.paused:
		s.renderOverlay(dst, board, "Paused", "Press P to continue")
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, s.Title(), core.ColorTitle)
	seed := fmt.Sprintf("seed %d", s.cfg.Seed)
	dst.DrawText(dst.Width()-len(seed)-1, 0, seed, core.ColorMuted)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorMuted)
}

// renderBoard draws grid rows from the top down; row 0 (the player row)
// sits below a separator at the bottom of the box.
func (s *Session) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorDefault)
	size := s.game.Size()
	cells := s.game.Grid().Serialise()

	for y := size - 1; y >= 1; y-- {
		sy := r.Y + size - y
		for x := range size {
			tag, ok := cells[NewPosition(x, y)]
			if !ok {
				dst.Set(s.cellX(r, x), sy, '·', core.ColorMuted)
				continue
			}
			e, _ := ParseEntity(tag)
			dst.Set(s.cellX(r, x), sy, tag, entityColors[e])
		}
	}

	sep := r.Y + size
	dst.DrawDivider(r, sep, core.ColorDefault)

	player := s.game.Player()
	dst.Set(s.cellX(r, player.X()), sep+1, Player.Display(), entityColors[Player])
}

func (s *Session) cellX(r core.Rect, x int) int {
	return r.X + 1 + x*cellW + cellW/2
}

type panelLine struct {
	text  string
	color core.Color
}

func (s *Session) renderPanel(dst *core.Screen, x, y int) {
	g := s.game
	lines := []panelLine{
		{"SCORE", core.ColorTitle},
		{fmt.Sprintf("Collected %d/%d", g.NumCollected(), g.Target()), core.ColorLoot},
		{fmt.Sprintf("Destroyed %d", g.NumDestroyed()), core.ColorThreat},
	}
	if s.mode == ModeAdvanced {
		lines = append(lines,
			panelLine{fmt.Sprintf("Shots     %d", g.TotalShots()), core.ColorStat},
			panelLine{"Timer     " + formatTimer(s.Elapsed()), core.ColorStat},
		)
	}
	for i, l := range lines {
		dst.DrawText(x, y+i, l.text, l.color)
	}

	if shot, ok := s.LastShot(); ok {
		msg := fmt.Sprintf("%s: %s", shot.Shot, shot.Outcome)
		if shot.Outcome != Missed {
			msg += " " + shot.Entity.String()
		}
		dst.DrawText(x, y+len(lines)+1, msg, core.ColorNotice)
	}
}

func (s *Session) renderOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	w := max(len(line1), len(line2)) + 4
	box := board.CenteredOn(w, 5, dst.Width())

	dst.Fill(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorNotice)
	dst.DrawText(box.X+(w-len(line1))/2, box.Y+1, line1, core.ColorNotice)
	dst.DrawText(box.X+(w-len(line2))/2, box.Y+3, line2, core.ColorDefault)
}

// formatTimer renders a duration as "1m 4s".
func formatTimer(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

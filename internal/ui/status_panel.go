// internal/ui/status_panel.go
package ui

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/event"
)

// StatusSnapshot — то, что показывает панель на текущем кадре
type StatusSnapshot struct {
	Preset      string
	Playing     bool
	Particles   int
	HeightRatio float64
	Direction   config.Direction
}

// StatusPanel выводит состояние эффекта и подсказки по клавишам.
// Последнее событие движка приходит через OnEvent.
type StatusPanel struct {
	X, Y     int
	fontFace font.Face

	mu        sync.Mutex
	lastEvent string
}

func NewStatusPanel(x, y int) *StatusPanel {
	return &StatusPanel{
		X:        x,
		Y:        y,
		fontFace: basicfont.Face7x13,
	}
}

// OnEvent запоминает последнее событие движка
func (p *StatusPanel) OnEvent(ev event.Event) {
	msg := string(ev.Type)
	switch d := ev.Data.(type) {
	case event.RebuiltData:
		msg = fmt.Sprintf("%s: %d particles", ev.Type, d.Particles)
	case event.HeightRatioData:
		msg = fmt.Sprintf("%s: %.2f (target %.2f)", ev.Type, d.Ratio, d.Target)
	}
	p.mu.Lock()
	p.lastEvent = msg
	p.mu.Unlock()
}

// LastEvent возвращает текст последнего события
func (p *StatusPanel) LastEvent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastEvent
}

// Lines собирает строки панели
func (p *StatusPanel) Lines(s StatusSnapshot) []string {
	state := "paused"
	if s.Playing {
		state = "playing"
	}
	lines := []string{
		fmt.Sprintf("%s [%s]", s.Preset, state),
		fmt.Sprintf("direction %s, %d bubbles, wave %.2f", s.Direction, s.Particles, s.HeightRatio),
		"space: play/pause  up/down: wave level  tab: next preset",
	}
	if last := p.LastEvent(); last != "" {
		lines = append(lines, last)
	}
	return lines
}

// Draw отрисовывает панель
func (p *StatusPanel) Draw(screen *ebiten.Image, s StatusSnapshot) {
	y := p.Y
	for _, line := range p.Lines(s) {
		text.Draw(screen, line, p.fontFace, p.X, y, config.TextLightColor)
		y += config.TextLineGap
	}
}

// Package viewer is the interactive terminal browser for a computed plan:
// riders on the left, the selected rider's workout on the right.
package viewer

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/ttt-sim/internal/paceline"
	"github.com/lowaak/ttt-sim/internal/zones"
)

// Viewer shows a plan and its projected workouts in a tview application
type Viewer struct {
	logger   *log.Logger
	app      *tview.Application
	plan     *paceline.PacelinePlan
	workouts paceline.Workouts
	names    []string

	riderList  *tview.List
	stepsPanel *tview.TextView
	tabWidgets []tview.Primitive
}

// New builds the viewer. It panics on a nil plan or logger.
func New(plan *paceline.PacelinePlan, workouts paceline.Workouts, logger *log.Logger) *Viewer {
	if plan == nil {
		panic("plan cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	v := &Viewer{
		logger:   logger,
		app:      tview.NewApplication(),
		plan:     plan,
		workouts: workouts,
		names:    plan.RiderNames(),
	}
	v.init()
	return v
}

func (v *Viewer) init() {
	v.stepsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetTextAlign(tview.AlignLeft)
	v.stepsPanel.SetBorder(true).SetTitle(" Workout ")

	v.riderList = tview.NewList().
		ShowSecondaryText(true).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			v.showRider(index)
		})
	v.riderList.SetBorder(true).SetTitle(" Riders ")

	for _, r := range v.plan.Riders {
		v.riderList.AddItem(tview.Escape(r.Name), riderSummary(r, v.workouts.TotalSeconds(r.Name)), 0, nil)
	}
	v.showRider(0)

	v.tabWidgets = []tview.Primitive{v.riderList, v.stepsPanel}

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(fmt.Sprintf("[gray]%d riders, %d rotations, %d pulls, %s total. Tab switches pane, Esc or q quits.[-]",
			len(v.plan.Riders), v.plan.Rotations, v.plan.PullCount(), formatMMSS(int(v.plan.TotalDuration().Seconds()))))

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(v.riderList, 0, 1, true).
		AddItem(v.stepsPanel, 0, 2, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(help, 1, 0, false)

	v.app.SetRoot(root, true).SetFocus(v.riderList)
	v.app.SetInputCapture(v.handleKey)
}

func (v *Viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyTab:
		for i, w := range v.tabWidgets {
			if w.HasFocus() {
				v.app.SetFocus(v.tabWidgets[(i+1)%len(v.tabWidgets)])
				return nil
			}
		}
		v.app.SetFocus(v.tabWidgets[0])
		return nil
	case event.Key() == tcell.KeyEscape,
		event.Key() == tcell.KeyRune && event.Rune() == 'q':
		v.logger.Printf("Viewer: quit")
		v.app.Stop()
		return nil
	}
	return event
}

func (v *Viewer) showRider(index int) {
	if index < 0 || index >= len(v.names) {
		v.stepsPanel.SetText("\n  [yellow]No rider selected[-]\n")
		return
	}
	v.stepsPanel.SetText(workoutText(v.plan, v.workouts, v.names[index]))
	v.stepsPanel.ScrollToBeginning()
}

// Run blocks until the user quits
func (v *Viewer) Run() error {
	v.logger.Printf("Viewer: showing %d riders", len(v.names))
	return v.app.Run()
}

func riderSummary(r paceline.RiderPowerPlan, totalSeconds int) string {
	parts := []string{fmt.Sprintf("FTP %.0f W", r.RiderData.FTP)}
	if wkg := r.RiderData.WKg(); wkg > 0 {
		parts = append(parts, fmt.Sprintf("%.1f W/kg", wkg))
	}
	parts = append(parts, fmt.Sprintf("pull %ds", int(r.PullDuration.Seconds())), formatMMSS(totalSeconds))
	return strings.Join(parts, ", ")
}

// workoutText renders one rider's steps as tview markup
func workoutText(plan *paceline.PacelinePlan, workouts paceline.Workouts, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  [yellow]%s[-]\n\n", tview.Escape(name))

	steps, ok := workouts[name]
	if !ok {
		sb.WriteString("  [red]No workout for this rider[-]\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "  [gray]Steps:[-] %d   [gray]Duration:[-] %s\n\n", len(steps), formatMMSS(workouts.TotalSeconds(name)))
	sb.WriteString("  [gray] Pull  Pos   Time   Power  Intensity  Zone[-]\n")

	elapsed := 0
	for i, s := range steps {
		pos := "-"
		if i < len(plan.Pulls) {
			if p, found := plan.Pulls[i].PositionOf(name); found {
				pos = fmt.Sprintf("%d", p.PositionInPull+1)
			}
		}
		z := zones.ForIntensity(s.Intensity)
		fmt.Fprintf(&sb, "  %5d  %3s  %5s  %4.0f W  %9.2f  [%s]%s %s[-]\n",
			i+1, pos, formatMMSS(elapsed), s.Power, s.Intensity, z.Hex(), string(z.Glyph), z.Name)
		elapsed += s.DurationSeconds
	}
	return sb.String()
}

func formatMMSS(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

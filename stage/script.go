package stage

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
	"time"
)

// Op is a replay script instruction.
type Op string

const (
	OpTap    Op = "tap"    // press the control
	OpTouch  Op = "touch"  // press at x y
	OpItem   Op = "item"   // press the n-th sheet item
	OpShow   Op = "show"   // show the sheet
	OpHide   Op = "hide"   // hide the sheet
	OpToggle Op = "toggle" // show or hide the sheet
	OpRest   Op = "rest"   // hide the sheet, then the control
	OpWake   Op = "wake"   // show the control at translation x y
	OpWait   Op = "wait"   // let a duration elapse
	OpSettle Op = "settle" // run until every animation is done
)

// Step is a parsed script line.
type Step struct {
	Op    Op
	Point image.Point
	Index int
	Wait  time.Duration
	Line  int
}

// DefaultScript opens the sheet, waits for it and dismisses it from the overlay.
const DefaultScript = `
tap
wait 500ms
touch 10 10
settle
`

// ParseScript reads one instruction per line. Blank lines and # comments are skipped.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", n, err)
		}
		step.Line = n
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseStep(fields []string) (Step, error) {
	step := Step{Op: Op(fields[0])}
	args := fields[1:]

	want := 0
	switch step.Op {
	case OpTap, OpShow, OpHide, OpToggle, OpRest, OpSettle:
	case OpTouch, OpWake:
		want = 2
	case OpItem, OpWait:
		want = 1
	default:
		return step, fmt.Errorf("unknown instruction %q", fields[0])
	}
	if len(args) != want {
		return step, fmt.Errorf("%s expects %d arguments, got %d", step.Op, want, len(args))
	}

	var err error
	switch step.Op {
	case OpTouch, OpWake:
		if step.Point.X, err = strconv.Atoi(args[0]); err != nil {
			return step, fmt.Errorf("%s x: %w", step.Op, err)
		}
		if step.Point.Y, err = strconv.Atoi(args[1]); err != nil {
			return step, fmt.Errorf("%s y: %w", step.Op, err)
		}
	case OpItem:
		if step.Index, err = strconv.Atoi(args[0]); err != nil {
			return step, fmt.Errorf("item index: %w", err)
		}
	case OpWait:
		if step.Wait, err = time.ParseDuration(args[0]); err != nil {
			return step, fmt.Errorf("wait: %w", err)
		}
		if step.Wait < 0 {
			return step, fmt.Errorf("wait: negative duration %v", step.Wait)
		}
	}
	return step, nil
}

// maxSettleTurns bounds the frames a settle instruction may run.
const maxSettleTurns = 100000

// Play runs the steps on the stage clock, advancing it by frame between the frames
// of every wait. The stage is settled at the end.
func (s *Stage) Play(steps []Step, frame time.Duration) error {
	s.Settle()
	for _, step := range steps {
		switch step.Op {
		case OpTap:
			s.Press(center(s.Control.Bounds()))
		case OpTouch:
			s.Press(step.Point)
			s.Release(step.Point)
		case OpItem:
			r := s.ItemRect(step.Index)
			if r.Empty() {
				return fmt.Errorf("script line %d: no sheet item %d", step.Line, step.Index)
			}
			s.Press(center(r))
		case OpShow:
			s.Coordinator.Show()
		case OpHide:
			s.Coordinator.Hide(nil)
		case OpToggle:
			s.Toggle()
		case OpRest:
			s.Rest()
		case OpWake:
			s.Wake(float32(step.Point.X), float32(step.Point.Y))
		case OpWait:
			s.Timeline.RunFor(step.Wait, frame)
		case OpSettle:
			if !s.Timeline.Drain(frame, maxSettleTurns) {
				return fmt.Errorf("script line %d: the stage did not settle", step.Line)
			}
		}
	}
	if !s.Timeline.Drain(frame, maxSettleTurns) {
		return fmt.Errorf("the stage did not settle")
	}
	return nil
}

func center(r image.Rectangle) image.Point {
	return r.Min.Add(r.Max).Div(2)
}

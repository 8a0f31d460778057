package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"take5/internal/model"
)

// Display renders game events to a terminal. It implements game.Broadcaster.
type Display struct {
	out   io.Writer
	names map[string]string
}

func NewDisplay(out io.Writer) *Display {
	return &Display{out: out, names: make(map[string]string)}
}

func (d *Display) Publish(msg model.Message) {
	switch p := msg.Payload.(type) {
	case model.GameSnapshot:
		for _, pl := range p.Players {
			d.names[pl.ID] = pl.Name
		}
	case model.RoundStartedPayload:
		fmt.Fprint(d.out, pterm.DefaultSection.Sprintfln("Round %d", p.Round))
		d.renderRows(p.Rows)
	case model.CardsRevealedPayload:
		for _, play := range p.Order {
			fmt.Fprint(d.out, pterm.Info.Sprintfln("%s plays %s", d.name(play.PlayerID), formatCard(play.Card)))
		}
	case model.Outcome:
		d.renderOutcome(msg.Type, p)
	case model.GameFinishedPayload:
		d.renderStandings(p.Standings)
	}
}

func (d *Display) name(id string) string {
	if n, ok := d.names[id]; ok {
		return n
	}
	return id
}

func (d *Display) renderRows(rows []model.Row) {
	data := pterm.TableData{{"Row", "Cards", "Bullheads"}}
	for i, r := range rows {
		data = append(data, []string{strconv.Itoa(i + 1), formatRow(r), strconv.Itoa(r.Penalty())})
	}
	d.renderTable(data)
}

func (d *Display) renderOutcome(eventType string, o model.Outcome) {
	who := d.name(o.PlayerID)
	switch {
	case eventType == model.EventRowTaken:
		fmt.Fprint(d.out, pterm.Warning.Sprintfln("%s takes row %d with %d: %d bullheads", who, o.Row+1, o.Card.Value, o.Penalty))
	case o.Penalty > 0:
		fmt.Fprint(d.out, pterm.Warning.Sprintfln("%s places %d and overflows row %d: %d bullheads", who, o.Card.Value, o.Row+1, o.Penalty))
	}
}

func (d *Display) renderStandings(standings []model.Standing) {
	if len(standings) == 0 {
		return
	}
	fmt.Fprint(d.out, pterm.Success.Sprintfln("The winner is %s", standings[0].Name))
	data := pterm.TableData{{"Place", "Player", "Penalty"}}
	for _, s := range standings {
		data = append(data, []string{strconv.Itoa(s.Place), s.Name, strconv.Itoa(s.Score)})
	}
	d.renderTable(data)
}

func (d *Display) renderTable(data pterm.TableData) {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(d.out, table)
}

// RenderStats prints the results ledger.
func RenderStats(out io.Writer, stats []model.PlayerStat) error {
	if len(stats) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		return nil
	}
	data := pterm.TableData{{"Player", "Games", "Total penalty"}}
	for _, s := range stats {
		data = append(data, []string{s.Name, strconv.Itoa(s.TotalGames), strconv.Itoa(s.TotalScore)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}

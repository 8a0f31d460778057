package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"take5/internal/model"
)

// TerminalChooser reads a player's choices from a line-oriented input.
// Rows are numbered from 1 at the prompt.
type TerminalChooser struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func NewTerminalChooser(name string, in *bufio.Scanner, out io.Writer) *TerminalChooser {
	return &TerminalChooser{name: name, in: in, out: out}
}

func (c *TerminalChooser) ChooseCard(ctx context.Context, hand []model.Card) (int, error) {
	values := make([]string, 0, len(hand))
	for _, card := range hand {
		values = append(values, formatCard(card))
	}
	fmt.Fprintf(c.out, "%s, your hand: %s\n", c.name, strings.Join(values, " "))

	for {
		value, err := c.readInt(ctx, "Card to play: ")
		if err != nil {
			return 0, err
		}
		for _, card := range hand {
			if card.Value == value {
				return value, nil
			}
		}
		fmt.Fprintln(c.out, "You don't have this card in your hand.")
	}
}

func (c *TerminalChooser) ChooseRow(ctx context.Context, rows []model.Row, card model.Card) (int, error) {
	fmt.Fprintf(c.out, "%s, your %d is lower than every row. Pick a row to take:\n", c.name, card.Value)
	for i, r := range rows {
		fmt.Fprintf(c.out, "  %d) %s  [%d bullheads]\n", i+1, formatRow(r), r.Penalty())
	}

	for {
		n, err := c.readInt(ctx, fmt.Sprintf("Row to take (1-%d): ", len(rows)))
		if err != nil {
			return 0, err
		}
		if n >= 1 && n <= len(rows) {
			return n - 1, nil
		}
		fmt.Fprintf(c.out, "There is no row %d.\n", n)
	}
}

func (c *TerminalChooser) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(c.out, prompt)
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(c.in.Text())
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(c.out, "%q is not a number.\n", line)
	}
}

func formatCard(c model.Card) string {
	return fmt.Sprintf("%d(%d)", c.Value, c.Score)
}

func formatRow(r model.Row) string {
	cards := make([]string, 0, r.Len())
	for _, c := range r.Cards {
		cards = append(cards, formatCard(c))
	}
	return strings.Join(cards, " ")
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/alexchen-dev/folio"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	unreadStyle = cellStyle.Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newMessagesCmd(configPath *string) *cobra.Command {
	var limit int
	var markRead bool

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List contact messages in the inbox",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			msgs, err := store.ListMessages(ctx, limit)
			if err != nil {
				return err
			}
			renderMessages(cmd.OutOrStdout(), msgs)
			if markRead {
				for _, m := range msgs {
					if m.Read {
						continue
					}
					if err := store.MarkRead(ctx, m.ID); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum messages to show (0 for all)")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark the listed messages as read")
	return cmd
}

func newSubscribersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribers",
		Short: "List newsletter subscribers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			subs, err := store.ListSubscribers(cmd.Context())
			if err != nil {
				return err
			}
			renderSubscribers(cmd.OutOrStdout(), subs)
			return nil
		},
	}
}

func renderMessages(w io.Writer, msgs []folio.StoredMessage) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Inbox is empty."))
		return
	}
	rows := make([][]string, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, []string{
			humanize.Time(m.ReceivedAt),
			m.Name,
			m.Email,
			excerpt(m.Body, 48),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RECEIVED", "NAME", "EMAIL", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case !msgs[row].Read:
				return unreadStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t)
	fmt.Fprintln(w, mutedStyle.Render(humanize.Comma(int64(len(msgs)))+" messages"))
}

func renderSubscribers(w io.Writer, subs []folio.Subscriber) {
	if len(subs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No subscribers yet."))
		return
	}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{s.Email, humanize.Time(s.CreatedAt)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("EMAIL", "SINCE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t)
}

// excerpt flattens s onto one line and cuts it to at most n runes.
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

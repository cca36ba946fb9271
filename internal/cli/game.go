package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/protocol"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <black|white>",
		Short: "Create a game and wait for an opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{
				Command: protocol.CmdCreate,
				Color:   parseColor(args[0]),
			})
			if err != nil {
				return err
			}

			var payload protocol.CreatePayload
			if err := decodePayload(resp, &payload); err != nil {
				return err
			}

			fmt.Printf("Game %s created, you play %s\n", payload.SessionID, payload.Color)
			fmt.Println("Share the game id with your opponent")
			return nil
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a waiting game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{
				Command:   protocol.CmdJoin,
				SessionID: args[0],
			})
			if err != nil {
				return err
			}

			var payload protocol.JoinPayload
			if err := decodePayload(resp, &payload); err != nil {
				return err
			}

			fmt.Printf("Joined game %s, you play %s\n", payload.SessionID, payload.Color)
			return nil
		},
	}
}

func newTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turn <row> <col>",
		Short: "Place a stone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("row must be a number: %q", args[0])
			}
			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("col must be a number: %q", args[1])
			}

			resp, err := client.Do(protocol.Request{
				Command: protocol.CmdTurn,
				Move:    &model.Move{Row: row, Col: col},
			})
			if err != nil {
				return err
			}

			return printOutcome(resp)
		},
	}
}

func newPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass",
		Short: "Pass your turn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{Command: protocol.CmdPass})
			if err != nil {
				return err
			}

			return printOutcome(resp)
		},
	}
}

func newSurrenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surrender",
		Short: "Give up the current game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{Command: protocol.CmdSurrender})
			if err != nil {
				return err
			}

			var payload protocol.ScorePayload
			if err := decodePayload(resp, &payload); err != nil {
				return err
			}

			printScore(payload.Score)
			return nil
		},
	}
}

// printOutcome renders a turn or pass response: a score when the game
// ended, the board otherwise
func printOutcome(resp *protocol.Response) error {
	var payload struct {
		Score *model.Score `json:"score"`
		Board *model.Board `json:"board"`
	}
	if err := decodePayload(resp, &payload); err != nil {
		return err
	}

	switch {
	case payload.Score != nil:
		fmt.Println("Game over")
		printScore(*payload.Score)
	case payload.Board != nil:
		printBoard(*payload.Board)
	default:
		return fmt.Errorf("unexpected response payload")
	}
	return nil
}

// parseColor normalizes a user-typed color argument to the wire form
func parseColor(arg string) model.Color {
	return model.Color(strings.ToLower(arg))
}

func printScore(score model.Score) {
	fmt.Printf("Black: %.1f\nWhite: %.1f\n", score.Black, score.White)
}

func printBoard(board model.Board) {
	for _, row := range board.Points {
		var sb strings.Builder
		for _, point := range row {
			switch point {
			case model.ColorBlack:
				sb.WriteString("X ")
			case model.ColorWhite:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		fmt.Println(strings.TrimRight(sb.String(), " "))
	}
}

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"cardclash/internal/config"
	"cardclash/internal/game"
	"cardclash/internal/room"
	"cardclash/internal/shared"
	"cardclash/internal/store"
)

const (
	roomID  = "table"
	humanID = "you"
	cpuID   = "cpu"
)

// console collects what the server would push over the wire.
type console struct {
	hands  map[string][]game.Card
	state  shared.GameState
	winner string
}

func (c *console) Broadcast(_ string, event string, data any) {
	switch v := data.(type) {
	case shared.GameState:
		c.state = v
	case shared.GameOver:
		c.winner = v.Winner
	}
}

func (c *console) CloseRoom(string) {}

func (c *console) Send(playerID string, _ string, data any) {
	if h, ok := data.(shared.Hand); ok {
		c.hands[playerID] = h.Cards
	}
}

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "shuffle seed")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed>>1))
	out := &console{hands: map[string][]game.Card{}}
	m := room.NewManager(store.NewMemoryStore(), config.Default().Game, nil, nil,
		room.WithDeckFactory(func() game.Deck { return game.NewDeckWithRand(rng) }),
	)
	m.SetHub(out)

	_, _ = m.Join(roomID, humanID, "You")
	_, _ = m.Join(roomID, cpuID, "CPU")

	reader := bufio.NewReader(os.Stdin)
	for out.winner == "" {
		st := out.state
		fmt.Printf("\nTop: %s   Deck: %d\n", st.DiscardTop, st.DeckCount)

		if st.CurrentTurn == cpuID {
			if stuck := cpuTurn(m, out); stuck {
				fmt.Println("Deck is empty and CPU cannot play. Game stalled.")
				return
			}
			continue
		}

		hand := out.hands[humanID]
		fmt.Println("Your hand:")
		for i, c := range hand {
			fmt.Printf("  [%d] %s\n", i, c)
		}
		fmt.Print("play <n> | draw > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "draw", "d":
			if err := m.Draw(roomID, humanID); errors.Is(err, room.ErrDeckEmpty) {
				if len(game.PlayableIndexes(hand, *st.DiscardTop)) == 0 {
					fmt.Println("Deck is empty and you cannot play. Game stalled.")
					return
				}
				fmt.Println("Deck is empty, you have to play.")
			}
		case "play", "p":
			if len(parts) != 2 {
				fmt.Println("Usage: play <n>")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("Not a number.")
				continue
			}
			if err := m.Play(roomID, humanID, n); err != nil {
				fmt.Println("Invalid move:", err)
			}
		default:
			fmt.Println("Unknown command.")
		}
	}

	fmt.Printf("\nGame over! Winner: %s\n", out.winner)
}

// cpuTurn plays the CPU's move and reports whether it could do nothing.
func cpuTurn(m *room.Manager, out *console) bool {
	hand := out.hands[cpuID]
	if i, ok := game.ChoosePlay(hand, *out.state.DiscardTop); ok {
		fmt.Printf("CPU plays %s\n", hand[i])
		return m.Play(roomID, cpuID, i) != nil
	}
	fmt.Println("CPU draws.")
	return m.Draw(roomID, cpuID) != nil
}

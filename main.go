package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gatewayx "github.com/goodfoods/concierge/agent/gateway"
	orchestratorx "github.com/goodfoods/concierge/agent/orchestrator"
	promptx "github.com/goodfoods/concierge/agent/prompt"
	statex "github.com/goodfoods/concierge/agent/state"
	toolx "github.com/goodfoods/concierge/agent/tool"
	configx "github.com/goodfoods/concierge/pkg/config"
	_ "github.com/goodfoods/concierge/pkg/logger/autoload"
	openrouterx "github.com/goodfoods/concierge/pkg/openrouter"
	"github.com/goodfoods/concierge/reservation"
)

var (
	flagSeed    int64
	flagVenues  int
	flagSession string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "concierge",
		Short:        "GoodFoods reservation concierge chat",
		Long:         "An agentic restaurant concierge: the model searches venues, checks availability, and books tables through structured tool calls.",
		RunE:         runChat,
		SilenceUsage: true,
	}
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "venue generator seed (0 uses the current time)")
	cmd.Flags().IntVar(&flagVenues, "venues", 100, "number of demo venues to generate")
	cmd.Flags().StringVar(&flagSession, "session", "local", "conversation session id")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := reservation.NewEngine()
	if err := engine.AddVenues(reservation.NewGenerator(seed).Venues(flagVenues)...); err != nil {
		return err
	}

	dispatcher, err := toolx.NewDispatcher(engine)
	if err != nil {
		return err
	}

	openRouterCfg, err := configx.New[openrouterx.Config]("OPENROUTER")
	if err != nil {
		return err
	}
	client, err := openrouterx.NewClient(*openRouterCfg)
	if err != nil {
		return err
	}

	gateway, err := gatewayx.New(client, *openRouterCfg, promptx.System(time.Now()), dispatcher.Specs())
	if err != nil {
		return err
	}

	orch, err := orchestratorx.New(statex.NewSessionStore(statex.DefaultMaxTurns), gateway, dispatcher, orchestratorx.Config{})
	if err != nil {
		return err
	}

	log.Info().Int64("seed", seed).Int("venues", flagVenues).Str("model", openRouterCfg.Model).Msg("concierge ready")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "GoodFoods Concierge. Ask for a table, or type /quit to exit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		result, err := orch.HandleMessage(cmd.Context(), flagSession, line)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}

		fmt.Fprintln(out, result.Text)
		for _, v := range result.Venues {
			fmt.Fprintf(out, "  [%s] %s | %s, %s | %s | rated %.1f\n",
				v.ID, v.Name, v.Cuisine, v.Location, v.PriceRange, v.Rating)
		}
	}
	return scanner.Err()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("concierge exited")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	eventType  string
	position   string
	jerseyNum  int
	outputFile string
	dryRun     bool

	username     string
	slackChannel string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(signUpCmd)
	rootCmd.AddCommand(signInCmd)
	rootCmd.AddCommand(signOutCmd)
	rootCmd.AddCommand(whoamiCmd)

	playersAddCmd.Flags().StringVar(&position, "position", "", "Playing position")
	playersAddCmd.Flags().IntVar(&jerseyNum, "jersey", -1, "Jersey number")
	playersCmd.AddCommand(playersListCmd, playersAddCmd, playersSeriesCmd)
	rootCmd.AddCommand(playersCmd)

	eventsListCmd.Flags().StringVar(&eventType, "type", "", "Only list events of this type (game or training)")
	eventsExportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the CSV to this file instead of stdout")
	eventsCmd.AddCommand(eventsListCmd, eventsBoxScoreCmd, eventsExportCmd)
	rootCmd.AddCommand(eventsCmd)

	statsRecordCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Save without announcing the box score")
	rootCmd.AddCommand(statsRecordCmd)

	averagesCmd.AddCommand(averagesTeamCmd, averagesPlayersCmd)
	rootCmd.AddCommand(averagesCmd)

	profileSetCmd.Flags().StringVar(&username, "username", "", "Display name")
	profileSetCmd.Flags().StringVar(&slackChannel, "slack-channel", "", "Slack channel id for game recaps (\"none\" disables them)")
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var signUpCmd = &cobra.Command{
	Use:   "signup <email> <password> <username>",
	Short: "Create an account and print its session token",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auth/signup", map[string]string{
			"email": args[0], "password": args[1], "username": args[2],
		})
	},
}

var signInCmd = &cobra.Command{
	Use:   "signin <email> <password>",
	Short: "Sign in and print a session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auth/signin", map[string]string{
			"email": args[0], "password": args[1],
		})
	},
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Revoke the current session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auth/signout", nil)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user behind the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/auth/user")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage the roster",
}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var playersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player to the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"name": args[0]}
		if position != "" {
			body["position"] = position
		}
		if jerseyNum >= 0 {
			body["jersey_number"] = jerseyNum
		}
		return performRequest(http.MethodPost, "/players", body)
	},
}

var playersSeriesCmd = &cobra.Command{
	Use:   "series <player-id>",
	Short: "Show a player's game-by-game statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/series")
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect trainings and games",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/events"
		if eventType != "" {
			endpoint += "?type=" + url.QueryEscape(eventType)
		}
		return performGetRequest(endpoint)
	},
}

var eventsBoxScoreCmd = &cobra.Command{
	Use:   "boxscore <event-id>",
	Short: "Show the box score of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/events/" + url.PathEscape(args[0]) + "/boxscore")
	},
}

var eventsExportCmd = &cobra.Command{
	Use:   "export <event-id>",
	Short: "Download the box score of an event as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := doRequest(http.MethodGet, "/events/"+url.PathEscape(args[0])+"/statistics.csv", nil)
		if err != nil {
			return err
		}
		if outputFile == "" {
			_, err = os.Stdout.Write(body)
			return err
		}
		return os.WriteFile(outputFile, body, 0o644)
	},
}

var statsRecordCmd = &cobra.Command{
	Use:   "record <event-id> <player-id> <points> <rebounds> <assists> <steals> <blocks>",
	Short: "Record one player's statistics for an event",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := make([]int, 5)
		for i, raw := range args[2:] {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", raw, err)
			}
			counts[i] = n
		}
		endpoint := "/statistics"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPut, endpoint, map[string]any{
			"event_id": args[0],
			"statistics": []map[string]any{{
				"player_id": args[1],
				"points":    counts[0],
				"rebounds":  counts[1],
				"assists":   counts[2],
				"steals":    counts[3],
				"blocks":    counts[4],
			}},
		})
	},
}

var averagesCmd = &cobra.Command{
	Use:   "averages",
	Short: "Show per-game averages",
}

var averagesTeamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the team's per-game averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/averages/team")
	},
}

var averagesPlayersCmd = &cobra.Command{
	Use:   "players",
	Short: "Show each player's per-game averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/averages/players")
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/profile")
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your username or recap channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := doRequest(http.MethodGet, "/profile", nil)
		if err != nil {
			return err
		}
		var profile map[string]any
		if err := json.Unmarshal(current, &profile); err != nil {
			return fmt.Errorf("failed to decode profile: %w", err)
		}
		body := map[string]any{"username": profile["username"]}
		for _, key := range []string{"avatar_url", "slack_channel_id"} {
			if v, ok := profile[key]; ok {
				body[key] = v
			}
		}
		if username != "" {
			body["username"] = username
		}
		switch slackChannel {
		case "":
		case "none":
			body["slack_channel_id"] = ""
		default:
			body["slack_channel_id"] = slackChannel
		}
		return performRequest(http.MethodPut, "/profile", body)
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, payload any) error {
	body, err := doRequest(method, endpoint, payload)
	if err != nil {
		return err
	}
	fmt.Println("Response Body:")
	fmt.Println(string(body))
	return nil
}

func doRequest(method, endpoint string, payload any) ([]byte, error) {
	url := host + endpoint
	fmt.Fprintf(os.Stderr, "Making %s request to %s\n", method, url)

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Status Code: %d\n", resp.StatusCode)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}

package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Microsoft/go-winio"
)

// Client is a thin, one-shot request/response helper for the CLI.
type Client struct{}

// SendStop asks the daemon to stop.
func (Client) SendStop() (string, error) { return send(wireRequest{Command: "stop"}) }

// SendStatus asks the daemon for a status string.
func (Client) SendStatus() (string, error) { return send(wireRequest{Command: "status"}) }

// SendAction asks the daemon to apply the named kebab-case action.
func (Client) SendAction(action string) (string, error) {
	return send(wireRequest{Command: "action", Action: action})
}

func send(req wireRequest) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := winio.DialPipeContext(ctx, PipeName)
	if err != nil {
		return "", fmt.Errorf("control: dial %s: %w", PipeName, err)
	}
	defer conn.Close()

	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return "", fmt.Errorf("control: write: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("control: read response: %w", err)
	}
	var resp wireResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return "", fmt.Errorf("control: malformed response: %w", err)
	}
	if resp.Status != "ok" {
		return "", fmt.Errorf("%s", resp.Message)
	}
	return resp.Message, nil
}

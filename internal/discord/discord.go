// Package discord shows the display in the bot's own sidebar entry: the
// identity line as its per-guild nickname and the status line as its
// activity.
package discord

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// MaxNickLength is Discord's nickname limit in characters.
const MaxNickLength = 32

// MaxActivityLength is Discord's activity name limit in characters.
const MaxActivityLength = 128

const guildPageSize = 200

const (
	nickSink   = "discord"
	statusSink = "discord_status"
)

// Session is the part of *discordgo.Session the client uses.
//
//go:generate mockgen -package=discord -destination=mock_session_test.go -source=discord.go Session
type Session interface {
	Open() error
	Close() error
	AddHandler(handler any) func()
	UserGuilds(limit int, beforeID, afterID string, withCounts bool, options ...discordgo.RequestOption) ([]*discordgo.UserGuild, error)
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
	UpdateGameStatus(idle int, name string) error
}

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client keeps the guild list current from gateway events and pushes
// every display to all guilds.
type Client struct {
	session Session
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	guilds   map[string]Guild
	loaded   bool
	removers []func()
}

// New builds a client on a bot session for token. Call Open before
// publishing.
func New(token string, log zerolog.Logger, m *metrics.Metrics) (*Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return NewWithSession(s, log, m), nil
}

func NewWithSession(s Session, log zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		session: s,
		log:     log,
		metrics: m,
		guilds:  make(map[string]Guild),
	}
}

// Open connects the gateway and loads the guild list. It returns the
// number of guilds the bot is in.
func (c *Client) Open(ctx context.Context) (int, error) {
	c.removers = append(c.removers,
		c.session.AddHandler(c.onGuildCreate),
		c.session.AddHandler(c.onGuildDelete),
	)
	if err := c.session.Open(); err != nil {
		return 0, fmt.Errorf("open gateway: %w", err)
	}
	return c.RefreshGuilds(ctx)
}

func (c *Client) Close() error {
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
	return c.session.Close()
}

// Guilds returns the known guilds ordered by id.
func (c *Client) Guilds() []Guild {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Guild, 0, len(c.guilds))
	for _, g := range c.guilds {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RefreshGuilds reloads the full guild list over REST. Guilds not seen
// before are logged as joins, except on the first load.
func (c *Client) RefreshGuilds(ctx context.Context) (int, error) {
	var all []Guild
	after := ""
	for {
		page, err := c.session.UserGuilds(guildPageSize, "", after, false, discordgo.WithContext(ctx))
		if err != nil {
			return 0, fmt.Errorf("list guilds: %w", err)
		}
		for _, g := range page {
			all = append(all, Guild{ID: g.ID, Name: g.Name})
		}
		if len(page) < guildPageSize {
			break
		}
		after = page[len(page)-1].ID
	}

	c.mu.Lock()
	first := !c.loaded
	var joined []Guild
	next := make(map[string]Guild, len(all))
	for _, g := range all {
		if _, ok := c.guilds[g.ID]; !ok && !first {
			joined = append(joined, g)
		}
		next[g.ID] = g
	}
	c.guilds = next
	c.loaded = true
	c.mu.Unlock()

	for _, g := range joined {
		c.log.Info().Str("guild", g.Name).Str("guild_id", g.ID).Msg("bot added to new server")
	}
	return len(all), nil
}

func (c *Client) onGuildCreate(_ *discordgo.Session, e *discordgo.GuildCreate) {
	if e == nil || e.Guild == nil {
		return
	}
	c.addGuild(Guild{ID: e.ID, Name: e.Name})
}

func (c *Client) onGuildDelete(_ *discordgo.Session, e *discordgo.GuildDelete) {
	// Unavailable means an outage, not a removal.
	if e == nil || e.Guild == nil || e.Unavailable {
		return
	}
	c.mu.Lock()
	_, ok := c.guilds[e.ID]
	delete(c.guilds, e.ID)
	c.mu.Unlock()
	if ok {
		c.log.Info().Str("guild_id", e.ID).Msg("bot removed from server")
	}
}

func (c *Client) addGuild(g Guild) {
	c.mu.Lock()
	_, known := c.guilds[g.ID]
	c.guilds[g.ID] = g
	announce := c.loaded && !known
	c.mu.Unlock()
	if announce {
		c.log.Info().Str("guild", g.Name).Str("guild_id", g.ID).Msg("bot added to new server")
	}
}

// Publish implements display.Publisher. Each guild gets one nickname
// attempt, then the activity is set once from the status line.
func (c *Client) Publish(ctx context.Context, d models.Display) {
	nick := truncate(d.Identity, MaxNickLength)
	for _, g := range c.Guilds() {
		if err := c.session.GuildMemberNickname(g.ID, "@me", nick, discordgo.WithContext(ctx)); err != nil {
			c.metrics.ObservePublish(nickSink, metrics.ResultFetchError)
			c.log.Error().Err(err).Str("guild_id", g.ID).Msg("set nickname failed")
			continue
		}
		c.metrics.ObservePublish(nickSink, metrics.ResultOK)
	}

	if d.Status == "" {
		return
	}
	if err := c.session.UpdateGameStatus(0, truncate(d.Status, MaxActivityLength)); err != nil {
		c.metrics.ObservePublish(statusSink, metrics.ResultFetchError)
		c.log.Error().Err(err).Msg("set status failed")
		return
	}
	c.metrics.ObservePublish(statusSink, metrics.ResultOK)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

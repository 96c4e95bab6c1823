package bot

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mineskin/skinbot/internal/config"
	"github.com/mineskin/skinbot/internal/discord"
	"github.com/mineskin/skinbot/internal/mineskin"
)

type editCapture struct {
	mu    sync.Mutex
	paths []string
	msgs  []discord.MessageData
}

func (c *editCapture) last(t *testing.T) (string, discord.MessageData) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		t.Fatal("no edit delivered")
	}
	return c.paths[len(c.paths)-1], c.msgs[len(c.msgs)-1]
}

func newCapturingDispatcher(t *testing.T) (*Dispatcher, *editCapture) {
	t.Helper()
	capture := &editCapture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg discord.MessageData
		json.Unmarshal(body, &msg)
		capture.mu.Lock()
		capture.paths = append(capture.paths, r.URL.Path)
		capture.msgs = append(capture.msgs, msg)
		capture.mu.Unlock()
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	client := discord.NewClient(config.DiscordConfig{Token: "t", AppID: "app1", APIBase: srv.URL})
	t.Cleanup(client.Close)
	return NewDispatcher(client), capture
}

func TestDeliverError(t *testing.T) {
	d, capture := newCapturingDispatcher(t)

	d.Deliver(&mineskin.GenerateResult{
		Token:         "tok1",
		InteractionID: "int1",
		Kind:          mineskin.KindURL,
		Failure:       &mineskin.APIError{Message: "upstream exploded", Code: "nope"},
	})

	path, msg := capture.last(t)
	if want := "/webhooks/app1/tok1/messages/@original"; path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if msg.Content != msgGenerateFailed {
		t.Errorf("content = %q, want the generic failure text", msg.Content)
	}
	if strings.Contains(msg.Content, "upstream exploded") {
		t.Error("raw upstream error leaked to the user")
	}
	if len(msg.Embeds) != 0 {
		t.Error("error message must not carry embeds")
	}
}

func TestDeliverSuccess(t *testing.T) {
	d, capture := newCapturingDispatcher(t)

	d.Deliver(&mineskin.GenerateResult{
		Token:         "tok2",
		InteractionID: "int2",
		Kind:          mineskin.KindUser,
		Skin: &mineskin.GeneratedSkin{
			ID:        77,
			IDStr:     "77",
			Variant:   "slim",
			Data:      mineskin.SkinData{Texture: mineskin.Texture{URL: "https://textures.minecraft.net/texture/abc"}},
			Timestamp: 1700000000,
			Duration:  4321,
		},
	})

	_, msg := capture.last(t)
	if msg.Content != "Successfully Generated!" {
		t.Errorf("content = %q", msg.Content)
	}
	if len(msg.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(msg.Embeds))
	}
	embed := msg.Embeds[0]

	if embed.Title != "#77" {
		t.Errorf("title = %q, want generated identifier fallback", embed.Title)
	}
	if !strings.HasPrefix(embed.URL, "https://minesk.in/77") {
		t.Errorf("permalink = %q", embed.URL)
	}
	if len(embed.Fields) != 2 || embed.Fields[0].Value != "user" || embed.Fields[1].Value != "slim" {
		t.Errorf("fields = %+v", embed.Fields)
	}
	if embed.Thumbnail == nil || !strings.Contains(embed.Thumbnail.URL, "render/head") {
		t.Errorf("thumbnail = %+v", embed.Thumbnail)
	}
	if embed.Image == nil || embed.Image.URL != "https://textures.minecraft.net/texture/abc" {
		t.Errorf("image = %+v", embed.Image)
	}
	if embed.Timestamp != "2023-11-14T22:13:20Z" {
		t.Errorf("timestamp = %q", embed.Timestamp)
	}
	if embed.Footer == nil || embed.Footer.Text != "Generated in 4321ms" {
		t.Errorf("footer = %+v", embed.Footer)
	}
}

func TestDeliverSuccessUsesSkinName(t *testing.T) {
	d, capture := newCapturingDispatcher(t)

	d.Deliver(&mineskin.GenerateResult{
		Token: "tok3",
		Kind:  mineskin.KindURL,
		Skin:  &mineskin.GeneratedSkin{IDStr: "9", Name: "My Cool Skin", Variant: "classic"},
	})

	_, msg := capture.last(t)
	if msg.Embeds[0].Title != "My Cool Skin" {
		t.Errorf("title = %q, want the skin name", msg.Embeds[0].Title)
	}
}

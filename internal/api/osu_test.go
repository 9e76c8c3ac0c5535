package api

import (
	"context"
	"net"
	"sync/atomic"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type fakeOsu struct {
	tokenRequests atomic.Int32
	lastAttrBody  atomic.Value
}

func (f *fakeOsu) handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	if path == "/oauth/token" {
		f.tokenRequests.Add(1)
		if string(ctx.PostArgs().Peek("grant_type")) != "client_credentials" {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		ctx.SetBodyString(`{"access_token":"tok","expires_in":86400,"token_type":"Bearer"}`)
		return
	}

	if string(ctx.Request.Header.Peek("Authorization")) != "Bearer tok" {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		return
	}

	switch path {
	case "/api/v2/users/7/beatmapsets/most_played":
		if string(ctx.QueryArgs().Peek("offset")) != "100" {
			ctx.SetBodyString(`[]`)
			return
		}
		ctx.SetBodyString(`[{"beatmap_id":20,"count":3,"beatmap":{"id":20,"beatmapset_id":10,"status":"ranked","version":"Normal"},"beatmapset":{"id":10,"title":"Song","artist":"Artist"}}]`)
	case "/api/v2/beatmaps/20/scores/users/7/all":
		ctx.SetBodyString(`{"scores":[
			{"id":1,"accuracy":0.97,"total_score":900000,"mods":[{"acronym":"HD"},{"acronym":"DT"}],"started_at":null},
			{"id":2,"accuracy":0.99,"total_score":950000,"mods":[{"acronym":"DT","settings":{"speed_change":1.3}}],"started_at":"2024-05-01T00:00:00Z"}
		]}`)
	case "/api/v2/beatmaps/20/attributes":
		f.lastAttrBody.Store(string(ctx.PostBody()))
		ctx.SetBodyString(`{"attributes":{"star_rating":6.42,"max_combo":1200}}`)
	case "/api/v2/users/peppy/osu":
		ctx.SetBodyString(`{"id":2,"username":"peppy"}`)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString(`{"error":null}`)
	}
}

func newTestClient(t *testing.T, fake *fakeOsu) *OsuClient {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: fake.handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { _ = ln.Close() })

	return newOsuClient("http://osu.test", "1", "secret", &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	})
}

func TestGetUserMostPlayed(t *testing.T) {
	fake := &fakeOsu{}
	c := newTestClient(t, fake)

	items, err := c.GetUserMostPlayed(context.Background(), 7, 100, 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(20), items[0].BeatmapID)
	assert.Equal(t, "ranked", items[0].Beatmap.Status)
	assert.Equal(t, "Normal", items[0].Beatmap.Version)
	assert.Equal(t, "Artist", items[0].Beatmapset.Artist)

	items, err = c.GetUserMostPlayed(context.Background(), 7, 100, 200)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, int32(1), fake.tokenRequests.Load(), "token is cached")
}

func TestGetBeatmapUserScores(t *testing.T) {
	c := newTestClient(t, &fakeOsu{})

	scores, err := c.GetBeatmapUserScores(context.Background(), 20, 7)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.False(t, scores[0].Lazer())
	assert.Equal(t, "HD", scores[0].Mods[0].Acronym)
	assert.False(t, scores[0].Mods[0].HasSettings())
	assert.Equal(t, 900000.0, scores[0].TotalScore)

	assert.True(t, scores[1].Lazer())
	assert.True(t, scores[1].Mods[0].HasSettings())
}

func TestGetBeatmapAttributes(t *testing.T) {
	fake := &fakeOsu{}
	c := newTestClient(t, fake)

	attrs, err := c.GetBeatmapAttributes(context.Background(), 20, []string{"HD", "DT"})
	require.NoError(t, err)
	assert.Equal(t, 6.42, attrs.StarRating)

	var body attributesRequest
	require.NoError(t, sonic.UnmarshalString(fake.lastAttrBody.Load().(string), &body))
	assert.Equal(t, []string{"HD", "DT"}, body.Mods)
	assert.Equal(t, "osu", body.Ruleset)

	_, err = c.GetBeatmapAttributes(context.Background(), 20, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mods":[],"ruleset":"osu"}`, fake.lastAttrBody.Load().(string))
}

func TestGetBeatmapAttributesForMods(t *testing.T) {
	fake := &fakeOsu{}
	c := newTestClient(t, fake)

	mods := []Mod{{Acronym: "HD"}, {Acronym: "DT", Settings: map[string]any{"speed_change": 1.3}}}
	attrs, err := c.GetBeatmapAttributesForMods(context.Background(), 20, mods)
	require.NoError(t, err)
	assert.Equal(t, 6.42, attrs.StarRating)
	assert.JSONEq(t, `{"mods":[{"acronym":"HD"},{"acronym":"DT","settings":{"speed_change":1.3}}],"ruleset":"osu"}`,
		fake.lastAttrBody.Load().(string))

	_, err = c.GetBeatmapAttributesForMods(context.Background(), 20, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mods":[],"ruleset":"osu"}`, fake.lastAttrBody.Load().(string))
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, &fakeOsu{})

	user, err := c.GetUser(context.Background(), "peppy", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, "peppy", user.Username)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, &fakeOsu{})

	_, err := c.GetBeatmapUserScores(context.Background(), 404, 7)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, fasthttp.StatusNotFound, statusErr.Code)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("124493"))
	assert.False(t, IsNumeric("cloudiees"))
}

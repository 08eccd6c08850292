package forecaststore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/forecast-advisor/internal/domain/weather/weathertest"
)

func TestValkeyStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newFakeValkey(t)
	store := NewValkeyStore(srv.client(t), "advisor-test")

	_, ok, err := store.Get(ctx, "forecast:perth")
	require.NoError(t, err)
	require.False(t, ok)

	f := weathertest.Forecast(time.Date(2024, 7, 1, 0, 0, 0, 0, time.FixedZone("AWST", 8*60*60)), 2, nil)
	f.FetchedAt = time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)
	f.Daily[1].PrecipitationSum = nil
	require.NoError(t, store.Save(ctx, "forecast:perth", f, 90*time.Second))

	set := srv.lastSet()
	require.Equal(t, "advisor-test:forecast:perth", set[1])
	require.Equal(t, []string{"EX", "90"}, set[3:])

	got, ok, err := store.Get(ctx, "forecast:perth")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Hourly, 48)
	require.True(t, got.Hourly[5].Time.Equal(f.Hourly[5].Time))
	require.Equal(t, f.Hourly[5].ApparentTemperature, got.Hourly[5].ApparentTemperature)
	require.True(t, got.FetchedAt.Equal(f.FetchedAt))
	require.NotNil(t, got.Daily[0].PrecipitationSum)
	require.Nil(t, got.Daily[1].PrecipitationSum)
	require.Equal(t, "AWST", got.TimezoneAbbrev)
}

func TestValkeyStoreExpiry(t *testing.T) {
	ctx := context.Background()
	srv := newFakeValkey(t)
	store := NewValkeyStore(srv.client(t), "")

	require.NoError(t, store.Save(ctx, "forecast", weathertest.Forecast(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 1, nil), 0))
	set := srv.lastSet()
	require.Equal(t, "advisor:forecast", set[1])
	require.Len(t, set, 3)

	// Sub-second TTLs round up so the key still expires.
	require.NoError(t, store.Save(ctx, "forecast", weathertest.Forecast(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 1, nil), 200*time.Millisecond))
	require.Equal(t, []string{"EX", "1"}, srv.lastSet()[3:])
}

func TestValkeyStoreRejectsCorruptPayload(t *testing.T) {
	srv := newFakeValkey(t)
	srv.put("advisor:forecast", "{not json")
	store := NewValkeyStore(srv.client(t), "advisor")

	_, ok, err := store.Get(context.Background(), "forecast")
	require.Error(t, err)
	require.False(t, ok)
	require.Contains(t, err.Error(), "decode cached forecast")
}

// fakeValkey speaks just enough RESP2 for GET, SET and PING.
type fakeValkey struct {
	ln   net.Listener
	mu   sync.Mutex
	data map[string]string
	sets [][]string
}

func newFakeValkey(t *testing.T) *fakeValkey {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &fakeValkey{ln: ln, data: make(map[string]string)}
	t.Cleanup(func() { _ = ln.Close() })
	go srv.serve()
	return srv
}

func (s *fakeValkey) client(t *testing.T) valkey.Client {
	t.Helper()
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{s.ln.Addr().String()},
		ForceSingleClient: true,
		DisableCache:      true,
		AlwaysRESP2:       true,
		ClientSetInfo:     valkey.DisableClientSetInfo,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func (s *fakeValkey) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *fakeValkey) lastSet() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sets) == 0 {
		return nil
	}
	return s.sets[len(s.sets)-1]
}

func (s *fakeValkey) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeValkey) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, s.reply(args)); err != nil {
			return
		}
	}
}

func (s *fakeValkey) reply(args []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "GET":
		v, ok := s.data[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	case "SET":
		s.data[args[1]] = args[2]
		s.sets = append(s.sets, args)
		return "+OK\r\n"
	default:
		return fmt.Sprintf("-ERR unknown command '%s'\r\n", args[0])
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, "*") {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	n, err := strconv.Atoi(strings.TrimSpace(header[1:]))
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "$")))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

package rpc

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var fastBudget = Budget{Attempts: 3, Interval: 10 * time.Millisecond}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeAnalyzer struct {
	morphemes map[string][]morph.Morpheme
	err       error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, sentence string) ([]morph.Morpheme, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.morphemes[sentence], nil
}

// startServer serves srv on a loopback listener for the duration of the test.
func startServer(t *testing.T, srv APIServer) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = Serve(ctx, lis, srv, quietLogger())
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	return lis.Addr().String()
}

func TestRoundTrip(t *testing.T) {
	period := morph.NewMorpheme("。", morph.Tags{"記号", "句点", "*", "*", "*", "*", "。", "。", "。"})
	analyzer := &fakeAnalyzer{morphemes: map[string][]morph.Morpheme{"。": {period}}}
	addr := startServer(t, NewServer(analyzer, "ipadic", quietLogger()))

	client, err := Connect(context.Background(), addr, fastBudget, quietLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "ipadic", client.DictionaryName())

	name, err := client.Dictionary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ipadic", name)

	morphemes, err := client.Analyze(context.Background(), "。")
	require.NoError(t, err)
	require.Len(t, morphemes, 1)
	assert.Equal(t, "。", morphemes[0].Text)
	assert.Equal(t, morph.Sign, morphemes[0].Category)
	assert.Equal(t, period.Tags, morphemes[0].Tags)
}

func TestAnalyze_EmptyResult(t *testing.T) {
	addr := startServer(t, NewServer(&fakeAnalyzer{}, "unidic", quietLogger()))

	client, err := Connect(context.Background(), addr, fastBudget, quietLogger())
	require.NoError(t, err)
	defer client.Close()

	morphemes, err := client.Analyze(context.Background(), "未知")
	require.NoError(t, err)
	assert.Empty(t, morphemes)
}

func TestAnalyze_TokenizerFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("connection refused")}
	addr := startServer(t, NewServer(analyzer, "ipadic", quietLogger()))

	client, err := Connect(context.Background(), addr, fastBudget, quietLogger())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Analyze(context.Background(), "雨")
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestServer_InvalidUTF8(t *testing.T) {
	s := NewServer(&fakeAnalyzer{}, "ipadic", quietLogger())
	_, err := s.Analyze(context.Background(), &Sentence{Sentence: "\xff\xfe"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestConnect_Unavailable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	_, err = Connect(context.Background(), addr, fastBudget, quietLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

type fakeProber struct {
	failures int
	schema   *morph.Schema
	calls    int
}

func (f *fakeProber) Probe(ctx context.Context) (*morph.Schema, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("not yet")
	}
	return f.schema, nil
}

func TestResolveDictionary(t *testing.T) {
	tests := []struct {
		name       string
		prober     *fakeProber
		configured string
		want       string
		wantErr    error
	}{
		{name: "auto detects unidic", prober: &fakeProber{schema: morph.UniDic}, configured: AutoDictionary, want: "unidic"},
		{name: "empty means auto", prober: &fakeProber{schema: morph.IPADIC}, want: "ipadic"},
		{name: "retries until reachable", prober: &fakeProber{failures: 2, schema: morph.IPADIC}, configured: "auto", want: "ipadic"},
		{name: "configured wins", prober: &fakeProber{schema: morph.UniDic}, configured: "ipadic", want: "ipadic"},
		{name: "budget spent", prober: &fakeProber{failures: 10, schema: morph.IPADIC}, configured: "auto", wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDictionary(context.Background(), tt.prober, tt.configured, fastBudget, quietLogger())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, fastBudget.Attempts, tt.prober.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDictionary_UnknownName(t *testing.T) {
	_, err := ResolveDictionary(context.Background(), &fakeProber{schema: morph.IPADIC}, "jumandic", fastBudget, quietLogger())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry(ctx, Budget{Attempts: 5, Interval: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBudget_Defaults(t *testing.T) {
	b := Budget{}.withDefaults()
	assert.Equal(t, DefaultConnectAttempts, b.Attempts)
	assert.Equal(t, DefaultConnectInterval, b.Interval)
}

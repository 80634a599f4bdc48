package negotiate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-negotiator/pkg/types"
)

func TestUpgradeSelectsCommonProtocol(t *testing.T) {
	server, client := newPipeSubstreamPair()

	serverUp := NewUpgrade("/echo/1.0.0", "/chat/1.0.0")
	clientUp := NewUpgrade("/echo/1.0.0")

	type result struct {
		stream *Stream
		err    error
	}
	srvCh := make(chan result, 1)
	go func() {
		s, err := serverUp.Apply(context.Background(), server, types.DirInbound)
		srvCh <- result{stream: s, err: err}
	}()

	clientStream, err := clientUp.Apply(context.Background(), client, types.DirOutbound)
	require.NoError(t, err)
	require.Equal(t, types.ProtocolID("/echo/1.0.0"), clientStream.Protocol())

	srv := <-srvCh
	require.NoError(t, srv.err)
	assert.Equal(t, types.ProtocolID("/echo/1.0.0"), srv.stream.Protocol())

	// 协商后的子流可以继续承载数据
	go func() {
		srv.stream.Write([]byte("pong"))
	}()
	buf := make([]byte, 4)
	clientStream.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = clientStream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf))
}

func TestUpgradeFailsOnMismatch(t *testing.T) {
	server, client := newPipeSubstreamPair()

	serverUp := NewUpgrade("/echo/1.0.0")
	clientUp := NewUpgrade("/other/1.0.0")

	srvErr := make(chan error, 1)
	go func() {
		_, err := serverUp.Apply(context.Background(), server, types.DirInbound)
		srvErr <- err
	}()

	_, err := clientUp.Apply(context.Background(), client, types.DirOutbound)
	assert.Error(t, err, "mismatched protocols must fail, not hang")

	client.Close()
	<-srvErr
}

func TestUpgradeHonorsContextDeadline(t *testing.T) {
	_, client := newPipeSubstreamPair()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 对端不参与协商，截止时间必须让 Apply 失败而不是挂起
	_, err := NewUpgrade("/echo/1.0.0").Apply(ctx, client, types.DirOutbound)
	require.Error(t, err)
}

func TestUpgradeRequiresProtocols(t *testing.T) {
	_, client := newPipeSubstreamPair()

	_, err := NewUpgrade().Apply(context.Background(), client, types.DirOutbound)
	assert.True(t, errors.Is(err, ErrNoProtocols))
}

func TestUpgradeProtocolsCopy(t *testing.T) {
	up := NewUpgrade("/echo/1.0.0")
	protos := up.Protocols()
	protos[0] = "/mutated"

	assert.Equal(t, types.ProtocolID("/echo/1.0.0"), up.Protocols()[0])
}

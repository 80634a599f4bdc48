package negotiator

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestNewMuxedConn(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- c
	}()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	serverConn, ok := <-accepted
	if !ok {
		t.Fatal("Accept() failed")
	}

	client, err := NewMuxedConn(clientConn, false)
	if err != nil {
		t.Fatalf("NewMuxedConn(client) failed: %v", err)
	}
	defer client.Close()
	server, err := NewMuxedConn(serverConn, true)
	if err != nil {
		t.Fatalf("NewMuxedConn(server) failed: %v", err)
	}
	defer server.Close()

	echoed := make(chan error, 1)
	go func() {
		ss, err := server.AcceptStream()
		if err != nil {
			echoed <- err
			return
		}
		defer ss.Close()
		buf := make([]byte, 2)
		if _, err := ss.Read(buf); err != nil {
			echoed <- err
			return
		}
		_, err = ss.Write(buf)
		echoed <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ss, err := client.OpenStream(ctx)
	if err != nil {
		t.Fatalf("OpenStream() failed: %v", err)
	}
	defer ss.Close()

	if _, err := ss.Write([]byte("hi")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	ss.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 2)
	if _, err := ss.Read(buf); err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(buf) != "hi" {
		t.Errorf("Read() = %q, want %q", buf, "hi")
	}

	if err := <-echoed; err != nil {
		t.Fatalf("server side failed: %v", err)
	}
}

func TestNewUpgrade(t *testing.T) {
	u := NewUpgrade("/a/1.0.0", "/b/1.0.0")
	protos := u.Protocols()
	if len(protos) != 2 {
		t.Fatalf("Protocols() len = %d, want 2", len(protos))
	}
	if protos[0] != ProtocolID("/a/1.0.0") {
		t.Errorf("Protocols()[0] = %q", protos[0])
	}
}

package socket

import (
	"net"
	"testing"
)

func TestApplyOnNonTCPConnIsNoOp(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	if err := Apply(server, DefaultConfig()); err != nil {
		t.Fatalf("Apply on net.Pipe conn: %v", err)
	}
}

func TestApplyOnTCPConn(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		if err := Apply(conn, DefaultConfig()); err != nil {
			t.Errorf("Apply: %v", err)
		}
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	<-done
}

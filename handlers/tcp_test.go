package handlers_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/handlers"
	"github.com/sarchlab/xdevs/rt"
)

var _ = Describe("DefaultTCPFormat", func() {
	It("splits a port,msg line", func() {
		port, msg, err := handlers.DefaultTCPFormat([]byte("Gen.in,42"))
		Expect(err).NotTo(HaveOccurred())
		Expect(port).To(Equal("Gen.in"))
		Expect(msg).To(Equal("42"))
	})

	It("rejects a line with no comma", func() {
		_, _, err := handlers.DefaultTCPFormat([]byte("nosep"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("TCPInputHandler", func() {
	It("parses and pushes one event per line a client sends", func() {
		queue := make(chan rt.Event, 4)
		h := handlers.NewTCPInputHandler("127.0.0.1", 0, queue, nil, nil)
		Expect(h.Initialize()).To(Succeed())
		defer h.Exit()

		go h.Run()

		conn, err := net.Dial("tcp", h.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write([]byte("Gen.in,hello\n"))
		Expect(err).NotTo(HaveOccurred())

		var ev rt.Event
		Eventually(queue, time.Second).Should(Receive(&ev))
		Expect(ev.Port).To(Equal("Gen.in"))
		Expect(ev.Value).To(Equal("hello"))
	})
})

var _ = Describe("TCPOutputHandler", func() {
	It("writes a formatted line for every popped event", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		defer listener.Close()

		queue := make(chan rt.Event, 4)
		addr := listener.Addr().(*net.TCPAddr)
		h := handlers.NewTCPOutputHandler("127.0.0.1", addr.Port, 0, nil, queue)
		Expect(h.Initialize()).To(Succeed())

		go h.Run()
		queue <- rt.Event{Port: "Out.x", Value: 7}

		conn, err := listener.Accept()
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		buf := make([]byte, 64)
		conn.SetReadDeadline(time.Now().Add(time.Second))
		n, err := conn.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("Out.x,7\n"))
	})
})

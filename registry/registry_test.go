package registry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/registry"
)

var _ = Describe("Registry", func() {
	It("registers and looks up a constructor by name", func() {
		r := registry.New[func() int]()
		Expect(r.Register("answer", func() int { return 42 })).To(Succeed())

		ctor, err := r.Lookup("answer")
		Expect(err).NotTo(HaveOccurred())
		Expect(ctor()).To(Equal(42))
	})

	It("rejects registering a duplicate name", func() {
		r := registry.New[func() int]()
		Expect(r.Register("answer", func() int { return 42 })).To(Succeed())
		err := r.Register("answer", func() int { return 7 })
		Expect(err).To(HaveOccurred())
	})

	It("fails to look up an unknown name", func() {
		r := registry.New[func() int]()
		_, err := r.Lookup("nope")
		Expect(err).To(HaveOccurred())
	})

	It("lists every registered name", func() {
		r := registry.New[func() int]()
		Expect(r.Register("a", func() int { return 1 })).To(Succeed())
		Expect(r.Register("b", func() int { return 2 })).To(Succeed())
		Expect(r.Names()).To(ConsistOf("a", "b"))
	})
})

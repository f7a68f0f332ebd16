package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/model"
)

// leaf is a minimal Atomic used only to exercise structural operations;
// its transition functions are never invoked by these tests.
type leaf struct {
	*model.Atomic
}

func newLeaf(name string) *leaf {
	l := &leaf{Atomic: model.NewAtomic(name)}
	l.AttachOwner(l)
	return l
}

func (l *leaf) Initialize()      {}
func (l *leaf) Exit()            {}
func (l *leaf) DeltaInt()        {}
func (l *leaf) DeltaExt(e float64) {}
func (l *leaf) DeltaCon()        {}
func (l *leaf) Lambda()          {}

var _ = Describe("Coupled structural operations", func() {
	It("adds components and sets their parent", func() {
		top := model.NewCoupled("Top")
		child := newLeaf("Child")

		Expect(top.AddComponent(child)).To(Succeed())
		Expect(child.Parent()).To(Equal(top))
		Expect(top.Components()).To(ConsistOf(model.Component(child)))
	})

	It("rejects adding a component that already has a parent", func() {
		top := model.NewCoupled("Top")
		other := model.NewCoupled("Other")
		child := newLeaf("Child")

		Expect(top.AddComponent(child)).To(Succeed())
		Expect(other.AddComponent(child)).To(MatchError(model.ErrComponentHasParent))
	})

	It("rejects a coupling already registered between the same two ports", func() {
		top := model.NewCoupled("Top")
		a := newLeaf("A")
		b := newLeaf("B")
		Expect(top.AddComponent(a)).To(Succeed())
		Expect(top.AddComponent(b)).To(Succeed())

		aOut := model.NewPort("out")
		bIn := model.NewPort("in")
		Expect(a.AddOutPort(aOut)).To(Succeed())
		Expect(b.AddInPort(bIn)).To(Succeed())

		_, err := top.AddCoupling(aOut, bIn, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = top.AddCoupling(aOut, bIn, nil)
		Expect(err).To(MatchError(model.ErrDuplicateCoupling))
	})

	It("classifies couplings into EIC, IC and EOC", func() {
		top := model.NewCoupled("Top")
		a := newLeaf("A")
		b := newLeaf("B")
		Expect(top.AddComponent(a)).To(Succeed())
		Expect(top.AddComponent(b)).To(Succeed())

		topIn := model.NewPort("in")
		topOut := model.NewPort("out")
		Expect(top.AddInPort(topIn)).To(Succeed())
		Expect(top.AddOutPort(topOut)).To(Succeed())

		aIn := model.NewPort("in")
		aOut := model.NewPort("out")
		Expect(a.AddInPort(aIn)).To(Succeed())
		Expect(a.AddOutPort(aOut)).To(Succeed())

		bIn := model.NewPort("in")
		bOut := model.NewPort("out")
		Expect(b.AddInPort(bIn)).To(Succeed())
		Expect(b.AddOutPort(bOut)).To(Succeed())

		eic, err := top.AddCoupling(topIn, aIn, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(top.EIC()[topIn][aIn]).To(Equal(eic))

		ic, err := top.AddCoupling(aOut, bIn, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(top.IC()[aOut][bIn]).To(Equal(ic))

		eoc, err := top.AddCoupling(bOut, topOut, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(top.EOC()[bOut][topOut]).To(Equal(eoc))

		_, err = top.AddCoupling(aIn, bOut, nil)
		Expect(err).To(MatchError(model.ErrCouplingShape))
	})

	It("rejects type-incompatible couplings", func() {
		top := model.NewCoupled("Top")
		a := newLeaf("A")
		b := newLeaf("B")
		Expect(top.AddComponent(a)).To(Succeed())
		Expect(top.AddComponent(b)).To(Succeed())

		aOut := model.NewTypedPort[int]("out")
		bIn := model.NewTypedPort[string]("in")
		Expect(a.AddOutPort(aOut)).To(Succeed())
		Expect(b.AddInPort(bIn)).To(Succeed())

		_, err := top.AddCoupling(aOut, bIn, nil)
		Expect(err).To(MatchError(model.ErrCouplingTypeMismatch))
	})

	It("removes a registered coupling and errors for an unknown one", func() {
		top := model.NewCoupled("Top")
		a := newLeaf("A")
		b := newLeaf("B")
		Expect(top.AddComponent(a)).To(Succeed())
		Expect(top.AddComponent(b)).To(Succeed())

		aOut := model.NewPort("out")
		bIn := model.NewPort("in")
		Expect(a.AddOutPort(aOut)).To(Succeed())
		Expect(b.AddInPort(bIn)).To(Succeed())

		coup, err := top.AddCoupling(aOut, bIn, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(top.RemoveCoupling(coup)).To(Succeed())
		Expect(top.RemoveCoupling(coup)).To(MatchError(model.ErrCouplingNotFound))
	})
})

package graph_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain/entities"
	"postarchive/src/services/graph"
	"postarchive/src/test_artefacts/stubs"
)

var _ = Describe("EntityIndex", func() {
	Context("resolving references", func() {
		When("the id exists", func() {
			It("should return the entity regardless of the declared kind", func() {
				// ARRANGE
				commenter := stubs.NewCommenterStub().WithID("42").Get()
				index := graph.NewEntityIndex([]entities.IncludedEntity{commenter})

				// ACT
				result, ok := index.Resolve(entities.Reference{Type: "something_else", ID: "42"})

				// ASSERT
				Expect(ok).To(BeTrue())
				Expect(result.ID).To(Equal(entities.EntityID("42")))
				Expect(result.Commenter).To(Equal(commenter.Commenter))
			})
		})

		When("the id does not exist", func() {
			It("should report not found", func() {
				// ARRANGE
				index := graph.NewEntityIndex([]entities.IncludedEntity{stubs.NewCommentStub().Get()})

				// ACT
				result, ok := index.Resolve(entities.Reference{Type: entities.KindComment, ID: "missing"})

				// ASSERT
				Expect(ok).To(BeFalse())
				Expect(result).To(BeNil())
			})
		})

		When("two entities share the same id", func() {
			It("should return the first one in list order", func() {
				// ARRANGE
				first := stubs.NewCommentStub().WithID("7").WithBody("first").Get()
				second := stubs.NewCommentStub().WithID("7").WithBody("second").Get()
				index := graph.NewEntityIndex([]entities.IncludedEntity{first, second})

				// ACT
				result, ok := index.Resolve(entities.Reference{Type: entities.KindComment, ID: "7"})

				// ASSERT
				Expect(ok).To(BeTrue())
				Expect(result.Comment.Body).To(Equal("first"))
				Expect(index.Len()).To(Equal(1))
			})
		})

		When("the index is nil", func() {
			It("should report not found", func() {
				var index *graph.EntityIndex

				_, ok := index.Resolve(entities.Reference{ID: "1"})

				Expect(ok).To(BeFalse())
				Expect(index.Len()).To(Equal(0))
			})
		})
	})
})

package render_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain"
	"postarchive/src/domain/entities"
	"postarchive/src/services/graph"
	"postarchive/src/services/render"
	"postarchive/src/test_artefacts/stubs"
)

const commentMarker = `<div class="comment mt-4">`

var _ = Describe("RenderComment", func() {
	var graphService *graph.GraphService

	BeforeEach(func() {
		graphService = graph.NewGraphService(nil, 0)
	})

	It("should render nothing for a nil node", func() {
		Expect(render.RenderComment(nil)).To(BeEmpty())
	})

	When("the comment has no replies", func() {
		It("should equal the single comment fragment", func() {
			// ARRANGE
			attrs := stubs.NewCommentStub().WithBody("hello").Get().Comment
			leaf := &domain.CommentNode{ID: "1", Comment: *attrs}
			withEmptyReplies := &domain.CommentNode{ID: "1", Comment: *attrs, Replies: []*domain.CommentNode{}}

			// ACT
			out := string(render.RenderComment(leaf))

			// ASSERT
			Expect(out).To(Equal(string(render.RenderComment(withEmptyReplies))))
			Expect(strings.Count(out, commentMarker)).To(Equal(1))
			Expect(out).To(ContainSubstring(`<p class="text-lg">hello</p>`))
		})
	})

	When("the comment has a reply tree", func() {
		It("should emit one segment per resolved comment, regardless of declared counts", func() {
			// ARRANGE
			grandchild := stubs.NewCommentStub().WithID("g").Get()
			child := stubs.NewCommentStub().WithID("c").WithReplies("g", "missing").WithReplyCount(10).Get()
			root := stubs.NewCommentStub().WithID("r").WithReplies("c", "gone").WithReplyCount(3).Get()
			index := graph.NewEntityIndex([]entities.IncludedEntity{child, grandchild})
			tree := graphService.BuildCommentTree(root, index)

			// ACT
			out := string(render.RenderComment(tree))

			// ASSERT
			Expect(strings.Count(out, commentMarker)).To(Equal(3))
			Expect(strings.Count(out, commentMarker)).To(Equal(tree.Count()))
		})

		It("should render parents before replies in declared order", func() {
			// ARRANGE
			second := stubs.NewCommentStub().WithID("2").WithBody("second reply").Get()
			first := stubs.NewCommentStub().WithID("1").WithBody("first reply").Get()
			root := stubs.NewCommentStub().WithID("r").WithBody("parent").WithReplies("1", "2").Get()
			tree := graphService.BuildCommentTree(root, graph.NewEntityIndex([]entities.IncludedEntity{second, first}))

			// ACT
			out := string(render.RenderComment(tree))

			// ASSERT
			parentAt := strings.Index(out, "parent")
			firstAt := strings.Index(out, "first reply")
			secondAt := strings.Index(out, "second reply")
			Expect(parentAt).To(BeNumerically("<", firstAt))
			Expect(firstAt).To(BeNumerically("<", secondAt))
		})

		It("should be byte-identical across renders", func() {
			child := stubs.NewCommentStub().WithID("c").Get()
			root := stubs.NewCommentStub().WithID("r").WithReplies("c").Get()
			tree := graphService.BuildCommentTree(root, graph.NewEntityIndex([]entities.IncludedEntity{child}))

			Expect(render.RenderComment(tree)).To(Equal(render.RenderComment(tree)))
		})
	})

	Context("identity block", func() {
		It("should render name, avatar, badges and date when the commenter has a name", func() {
			// ARRANGE
			commenter := stubs.NewCommenterStub().WithID("u").WithFullName("Grace Hopper").WithImageURL("https://img.example/a.png").Get()
			comment := stubs.NewCommentStub().WithCommenter("u").ByCreator().ByPatron().Get()
			comment.Comment.Created = "2023-05-04T10:00:00+00:00"
			tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex([]entities.IncludedEntity{commenter}))

			// ACT
			out := string(render.RenderComment(tree))

			// ASSERT
			Expect(out).To(ContainSubstring("Grace Hopper"))
			Expect(out).To(ContainSubstring(`src="https://img.example/a.png"`))
			Expect(out).To(ContainSubstring("fa-star"))
			Expect(out).To(ContainSubstring("fa-user"))
			Expect(out).To(ContainSubstring("May 4, 2023"))
		})

		DescribeTable("should be absent without a display name, even with an avatar",
			func(name string) {
				commenter := stubs.NewCommenterStub().WithID("u").WithFullName(name).WithImageURL("https://img.example/a.png").Get()
				comment := stubs.NewCommentStub().WithCommenter("u").ByCreator().Get()
				tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex([]entities.IncludedEntity{commenter}))

				out := string(render.RenderComment(tree))

				Expect(out).NotTo(ContainSubstring("https://img.example/a.png"))
				Expect(out).NotTo(ContainSubstring("rounded-full"))
				Expect(out).NotTo(ContainSubstring("fa-star"))
			},
			Entry("empty name", ""),
			Entry("blank name", "   "),
		)

		It("should be absent when the commenter is not resolved", func() {
			comment := stubs.NewCommentStub().WithCommenter("ghost").Get()
			tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex(nil))

			Expect(string(render.RenderComment(tree))).NotTo(ContainSubstring("rounded-full"))
		})
	})

	Context("metadata row", func() {
		It("should show votes, declared replies and the deletion marker", func() {
			comment := stubs.NewCommentStub().WithVoteSum(12).WithReplyCount(4).WithDeletedAt("2024-01-01T00:00:00Z").Get()
			tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex(nil))

			out := string(render.RenderComment(tree))

			Expect(out).To(ContainSubstring(`<i class="fas fa-thumbs-up"></i> 12</span>`))
			Expect(out).To(ContainSubstring(`<i class="fas fa-reply"></i> 4</span>`))
			Expect(out).To(ContainSubstring("fa-trash"))
		})

		It("should not show the deletion marker for live comments", func() {
			comment := stubs.NewCommentStub().Get()
			tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex(nil))

			Expect(string(render.RenderComment(tree))).NotTo(ContainSubstring("fa-trash"))
		})
	})

	It("should escape comment bodies", func() {
		comment := stubs.NewCommentStub().WithBody(`<script>alert(1)</script>`).Get()
		tree := graphService.BuildCommentTree(comment, graph.NewEntityIndex(nil))

		Expect(string(render.RenderComment(tree))).NotTo(ContainSubstring("<script>"))
	})
})

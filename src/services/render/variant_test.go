package render_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain/entities"
	"postarchive/src/services/render"
)

var _ = Describe("Content variants", func() {
	Context("VariantsOf", func() {
		It("should return nothing for a post without payload", func() {
			attrs := &entities.PostAttributes{Title: "plain", Content: "text"}

			Expect(render.VariantsOf(attrs, 0)).To(BeEmpty())
			Expect(render.RenderVariants(attrs, 0)).To(BeEmpty())
		})

		It("should return nothing for nil attributes", func() {
			Expect(render.VariantsOf(nil, 0)).To(BeEmpty())
		})

		It("should keep file before embed when both are present", func() {
			// ARRANGE
			attrs := &entities.PostAttributes{
				PostFile: &entities.PostFile{Name: "a.png", URL: "https://x/a.png"},
				Embed:    &entities.Embed{URL: "https://example.com/page"},
				PostType: "link",
			}

			// ACT
			variants := render.VariantsOf(attrs, 3)

			// ASSERT
			Expect(variants).To(HaveLen(2))
			Expect(variants[0]).To(BeAssignableToTypeOf(render.FileVariant{}))
			Expect(variants[1]).To(Equal(render.EmbedVariant{
				Embed:    entities.Embed{URL: "https://example.com/page"},
				PostType: "link",
				Index:    3,
			}))

			out := string(render.RenderVariants(attrs, 3))
			Expect(strings.Index(out, "View full size")).To(BeNumerically("<", strings.Index(out, "https://example.com/page")))
		})
	})

	Context("RenderVariant", func() {
		It("should render an empty fragment for a nil variant", func() {
			Expect(render.RenderVariant(nil)).To(BeEmpty())
		})
	})

	Context("file variant", func() {
		DescribeTable("layout selection by extension",
			func(url string, image bool) {
				Expect(render.IsImageURL(url)).To(Equal(image))

				out := string(render.RenderPostFile(entities.PostFile{Name: "file", URL: url}))
				if image {
					Expect(out).To(ContainSubstring("<img"))
					Expect(out).To(ContainSubstring("View full size"))
					Expect(out).NotTo(ContainSubstring("Linked file"))
				} else {
					Expect(out).To(ContainSubstring("Linked file:"))
					Expect(out).NotTo(ContainSubstring("<img"))
				}
			},
			Entry("uppercase png", "https://x/y/photo.PNG", true),
			Entry("jpg", "https://x/y/photo.jpg", true),
			Entry("jpeg", "https://x/y/photo.jpeg", true),
			Entry("gif", "https://x/y/anim.gif", true),
			Entry("bmp", "https://x/y/old.BMP", true),
			Entry("png with query", "https://x/y/photo.png?token=abc", true),
			Entry("pdf", "https://x/y/doc.pdf", false),
			Entry("zip", "https://x/y/archive.zip", false),
			Entry("png-like name without extension", "https://x/y/pngfile", false),
		)

		It("should point image and full size link to the same url", func() {
			out := string(render.RenderPostFile(entities.PostFile{Name: "photo", URL: "https://x/y/photo.PNG"}))

			Expect(out).To(ContainSubstring(`src="https://x/y/photo.PNG"`))
			Expect(out).To(ContainSubstring(`href="https://x/y/photo.PNG"`))
		})

		It("should show the file name as link text for linked files", func() {
			out := string(render.RenderPostFile(entities.PostFile{Name: "doc.pdf", URL: "https://x/y/doc.pdf"}))

			Expect(out).To(ContainSubstring(`href="https://x/y/doc.pdf"`))
			Expect(out).To(ContainSubstring(">doc.pdf</a>"))
		})

		It("should fall back to the url file name when the name is empty", func() {
			out := string(render.RenderPostFile(entities.PostFile{URL: "https://x/y/doc.pdf"}))

			Expect(out).To(ContainSubstring(">doc.pdf</a>"))
		})

		It("should escape the file name", func() {
			out := string(render.RenderPostFile(entities.PostFile{Name: "<b>evil</b>", URL: "https://x/y/doc.pdf"}))

			Expect(out).NotTo(ContainSubstring("<b>"))
			Expect(out).To(ContainSubstring("&lt;b&gt;evil&lt;/b&gt;"))
		})
	})

	Context("embed variant", func() {
		const rawVideo = `<iframe src="//cdn.example/v" width="640" height="360"></iframe>`

		When("the post is a video embed", func() {
			It("should rewrite protocol-relative sources to https", func() {
				out := string(render.RenderEmbed(entities.Embed{HTML: rawVideo}, entities.PostTypeVideoEmbed, 0))

				Expect(out).To(ContainSubstring(`src="https://cdn.example/v"`))
				Expect(out).NotTo(ContainSubstring(`src="//`))
			})

			It("should make the frame responsive", func() {
				out := string(render.RenderEmbed(entities.Embed{HTML: rawVideo}, entities.PostTypeVideoEmbed, 0))

				Expect(out).To(ContainSubstring(`<iframe class="w-full h-full" style="aspect-ratio: 16/9" src=`))
			})

			It("should keep the markup inert behind an index keyed gate", func() {
				out := string(render.RenderEmbed(entities.Embed{HTML: rawVideo}, entities.PostTypeVideoEmbed, 7))

				Expect(out).To(ContainSubstring(`data-embed-index="7"`))
				Expect(out).To(ContainSubstring(`<template class="video" id="video-7"><iframe`))
				Expect(out).To(ContainSubstring("Load embed"))
			})

			It("should rewrite every protocol-relative reference", func() {
				markup := `<iframe src="//a.example/1"></iframe><iframe src="//b.example/2"></iframe>`

				out := render.SecureVideoMarkup(markup)

				Expect(out).NotTo(ContainSubstring(`"//`))
				Expect(strings.Count(out, `style="aspect-ratio: 16/9"`)).To(Equal(2))
			})

			It("should size iframes whatever the tag case", func() {
				out := render.SecureVideoMarkup(`<IFRAME src="//cdn/v"></IFRAME><Iframe src="//cdn/w"></Iframe>`)

				Expect(out).To(ContainSubstring(`<iframe class="w-full h-full" style="aspect-ratio: 16/9" src="https://cdn/v">`))
				Expect(strings.Count(out, `style="aspect-ratio: 16/9"`)).To(Equal(2))
			})

			It("should not touch tags that only start like an iframe", func() {
				out := render.SecureVideoMarkup(`<iframely-card src="//cdn/v"></iframely-card>`)

				Expect(out).NotTo(ContainSubstring("aspect-ratio"))
			})

			It("should append the link when the embed has an url", func() {
				out := string(render.RenderEmbed(entities.Embed{HTML: rawVideo, URL: "https://video.example/watch"}, entities.PostTypeVideoEmbed, 1))

				Expect(out).To(ContainSubstring("video-1"))
				Expect(out).To(HaveSuffix(`<br><a href="https://video.example/watch" class="text-blue-400 hover:underline">https://video.example/watch</a>`))
			})
		})

		When("the post is not a video embed", func() {
			It("should only render the link", func() {
				out := string(render.RenderEmbed(entities.Embed{HTML: rawVideo, URL: "https://example.com/a"}, "link", 2))

				Expect(out).NotTo(ContainSubstring("<template"))
				Expect(out).NotTo(ContainSubstring("iframe"))
				Expect(out).To(ContainSubstring(`href="https://example.com/a"`))
			})

			It("should render nothing without url", func() {
				Expect(render.RenderEmbed(entities.Embed{HTML: rawVideo}, "unknown_kind", 2)).To(BeEmpty())
			})
		})
	})
})

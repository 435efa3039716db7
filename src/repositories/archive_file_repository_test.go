package repositories_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain"
	"postarchive/src/repositories"
)

var _ = Describe("ArchiveFileRepository", func() {
	var (
		dataDir        string
		fileRepository *repositories.ArchiveFileRepository
	)

	BeforeEach(func() {
		dataDir = GinkgoT().TempDir()
		fileRepository = repositories.NewArchiveFileRepository()
	})

	Context("LoadPosts", func() {
		It("should decode the exported posts in order", func() {
			// ARRANGE
			content := `[
				{"attributes": {"title": "first", "post_type": "text_only"}},
				{"attributes": {"title": "second", "post_type": "text_only"}, "comments": {"data": [], "included": []}}
			]`
			Expect(os.WriteFile(filepath.Join(dataDir, repositories.DataFileName), []byte(content), 0o600)).To(Succeed())

			// ACT
			posts, err := fileRepository.LoadPosts(dataDir)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(posts).To(HaveLen(2))
			Expect(posts[0].Attributes.Title).To(Equal("first"))
			Expect(posts[0].Comments).To(BeNil())
			Expect(posts[1].Comments.Data).To(BeEmpty())
		})

		It("should report a missing export as archive not found", func() {
			_, err := fileRepository.LoadPosts(dataDir)

			Expect(err).To(MatchError(domain.ErrArchiveNotFound))
		})

		It("should fail on invalid json", func() {
			Expect(os.WriteFile(filepath.Join(dataDir, repositories.DataFileName), []byte(`{"not": "a list"}`), 0o600)).To(Succeed())

			_, err := fileRepository.LoadPosts(dataDir)

			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(domain.ErrArchiveNotFound))
		})
	})

	Context("SaveDocument", func() {
		It("should write the document and return its absolute path", func() {
			path, err := fileRepository.SaveDocument(dataDir, "2024-02-03_index.html", "<html></html>")

			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.IsAbs(path)).To(BeTrue())

			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("<html></html>"))
		})

		It("should fail when the directory does not exist", func() {
			_, err := fileRepository.SaveDocument(filepath.Join(dataDir, "missing"), "index.html", "x")

			Expect(err).To(HaveOccurred())
		})
	})
})

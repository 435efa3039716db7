package repositories_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain"
	"postarchive/src/domain/entities"
	"postarchive/src/helper/env"
	"postarchive/src/infra/postgres"
	"postarchive/src/repositories"
	"postarchive/src/test_artefacts/comparer"
	"postarchive/src/test_artefacts/stubs"
	"postarchive/src/test_artefacts/test_seeder"
)

var _ = Describe("Archive repositories", func() {
	var (
		readWriteClient        *postgres.ReadWriteClient
		testSeeder             test_seeder.TestSeeder
		archiveQueryRepository *repositories.ArchiveQueryRepository
		archiveWriteRepository *repositories.ArchiveWriteRepository
		ctx                    context.Context
		err                    error
	)

	dbReadHost := env.GetString("TEST_DB_READ_HOST")
	dbWriteHost := env.GetString("TEST_DB_WRITE_HOST")
	dbReadPort := env.GetString("TEST_DB_READ_PORT", "5432")
	dbWritePort := env.GetString("TEST_DB_WRITE_PORT", "5432")
	dbname := env.GetString("TEST_DB_NAME")
	dbUser := env.GetString("TEST_DB_USER")
	dbPassword := env.GetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 5)

	BeforeEach(func() {
		if dbWriteHost == "" {
			Skip("TEST_DB_WRITE_HOST not set")
		}

		ctx = context.Background()

		// Conexão com o banco de teste
		readWriteClient, err = postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
		Expect(err).NotTo(HaveOccurred())

		archiveQueryRepository = repositories.NewArchiveQueryRepository(readWriteClient.GetReadPool())
		archiveWriteRepository = repositories.NewArchiveWriteRepository(readWriteClient.GetWritePool())
		testSeeder = test_seeder.New(readWriteClient.GetWritePool())

		// Limpar dados
		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	Context("UpsertPosts", func() {
		When("the posts are new", func() {
			It("should store one row per position with the indexed columns", func() {
				// ARRANGE
				post := stubs.NewPostStub().
					WithTitle("Update!!").
					WithPublishedAt("2024-02-03T10:00:00.000+00:00").
					Get()

				// ACT
				err := archiveWriteRepository.UpsertPosts(ctx, []domain.ArchivedPostDTO{
					{Creator: "artist", Position: 0, Post: post},
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				rows := testSeeder.SelectArchivedPosts(ctx, "artist")
				Expect(rows).To(HaveLen(1))
				Expect(*rows[0].Title).To(Equal("Update!!"))
				Expect(*rows[0].PublishedAt).To(BeComparableTo(time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC), comparer.TimeWithinTolerance(0)))

				var stored entities.Post
				Expect(json.Unmarshal(rows[0].Payload, &stored)).To(Succeed())
				Expect(stored.Attributes.Title).To(Equal("Update!!"))
			})

			It("should store a null published_at when the date cannot be parsed", func() {
				post := stubs.NewPostStub().WithPublishedAt("someday").Get()

				Expect(archiveWriteRepository.UpsertPosts(ctx, []domain.ArchivedPostDTO{
					{Creator: "artist", Position: 0, Post: post},
				})).To(Succeed())

				rows := testSeeder.SelectArchivedPosts(ctx, "artist")
				Expect(rows[0].PublishedAt).To(BeNil())
			})
		})

		When("a position already exists", func() {
			It("should replace the stored post", func() {
				testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{
					Creator:  "artist",
					Position: 0,
					Post:     stubs.NewPostStub().WithTitle("draft").Get(),
				})

				err := archiveWriteRepository.UpsertPosts(ctx, []domain.ArchivedPostDTO{
					{Creator: "artist", Position: 0, Post: stubs.NewPostStub().WithTitle("final").Get()},
				})

				Expect(err).NotTo(HaveOccurred())
				rows := testSeeder.SelectArchivedPosts(ctx, "artist")
				Expect(rows).To(HaveLen(1))
				Expect(*rows[0].Title).To(Equal("final"))
			})
		})

		When("the batch repeats a position", func() {
			It("should not fail", func() {
				err := archiveWriteRepository.UpsertPosts(ctx, []domain.ArchivedPostDTO{
					{Creator: "artist", Position: 0, Post: stubs.NewPostStub().Get()},
					{Creator: "artist", Position: 0, Post: stubs.NewPostStub().Get()},
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(testSeeder.SelectArchivedPosts(ctx, "artist")).To(HaveLen(1))
			})
		})
	})

	Context("LoadPosts", func() {
		It("should return the creator's posts ordered by position", func() {
			for _, position := range []int{2, 0, 1} {
				testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{
					Creator:  "artist",
					Position: position,
					Post:     stubs.NewPostStub().WithTitle(string(rune('a' + position))).Get(),
				})
			}
			testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{
				Creator: "someone_else", Position: 0, Post: stubs.NewPostStub().Get(),
			})

			posts, err := archiveQueryRepository.LoadPosts(ctx, "artist")

			Expect(err).NotTo(HaveOccurred())
			Expect(posts).To(HaveLen(3))
			Expect([]string{posts[0].Attributes.Title, posts[1].Attributes.Title, posts[2].Attributes.Title}).
				To(Equal([]string{"a", "b", "c"}))
		})

		It("should keep the comment graph intact", func() {
			reply := stubs.NewCommentStub().WithID("2").Get()
			top := stubs.NewCommentStub().WithID("1").WithReplies("2").Get()
			post := stubs.NewPostStub().WithComments(
				[]entities.IncludedEntity{top},
				[]entities.IncludedEntity{reply},
			).Get()
			testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{Creator: "artist", Position: 0, Post: post})

			posts, err := archiveQueryRepository.LoadPosts(ctx, "artist")

			Expect(err).NotTo(HaveOccurred())
			Expect(posts[0]).To(BeComparableTo(post, comparer.JSONRawMessage()))
		})

		It("should return archive not found for unknown creators", func() {
			_, err := archiveQueryRepository.LoadPosts(ctx, "nobody")

			Expect(err).To(MatchError(domain.ErrArchiveNotFound))
		})
	})

	Context("ListCreators", func() {
		It("should list each creator once", func() {
			testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{Creator: "zoe", Position: 0, Post: stubs.NewPostStub().Get()})
			testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{Creator: "ana", Position: 0, Post: stubs.NewPostStub().Get()})
			testSeeder.InsertArchivedPost(ctx, domain.ArchivedPostDTO{Creator: "ana", Position: 1, Post: stubs.NewPostStub().Get()})

			creators, err := archiveQueryRepository.ListCreators(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(creators).To(Equal([]string{"ana", "zoe"}))
		})
	})
})

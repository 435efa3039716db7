package repositories_test

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"postarchive/src/domain"
	"postarchive/src/helper/env"
	"postarchive/src/infra/redis"
	"postarchive/src/repositories"
	"postarchive/src/test_artefacts/comparer"
)

var _ = Describe("SnapshotRepository", func() {
	var (
		redisClient        *redis.RedisClient
		snapshotRepository *repositories.SnapshotRepository
		ctx                context.Context
		creator            string
	)

	redisAddrs := env.GetString("TEST_REDIS_HOSTS")
	redisPoolSize := env.GetInt("TEST_REDIS_POOL_SIZE", 5)

	BeforeEach(func() {
		if redisAddrs == "" {
			Skip("TEST_REDIS_HOSTS not set")
		}

		ctx = context.Background()
		redisClient = redis.NewRedisClient(redisAddrs, redisPoolSize, time.Minute)
		snapshotRepository = repositories.NewSnapshotRepository(slog.New(slog.DiscardHandler), redisClient)

		// Criador único por teste: os testes não compartilham chaves
		creator = "test_" + uuid.NewString()
	})

	AfterEach(func() {
		if redisClient != nil {
			redisClient.Close()
		}
	})

	It("should return the last published snapshot", func() {
		// ARRANGE
		first := domain.Snapshot{RenderID: uuid.NewString(), Creator: creator, PostCount: 1, RenderedAt: time.Now().UTC(), Document: "<p>1</p>"}
		second := domain.Snapshot{RenderID: uuid.NewString(), Creator: creator, PostCount: 2, RenderedAt: time.Now().UTC(), Document: "<p>2</p>"}

		// ACT
		Expect(snapshotRepository.Publish(ctx, first)).To(Succeed())
		Expect(snapshotRepository.Publish(ctx, second)).To(Succeed())
		latest, err := snapshotRepository.Latest(ctx, creator)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(latest).To(BeComparableTo(&second, comparer.TimeWithinTolerance(0)))
	})

	It("should report missing snapshots", func() {
		_, err := snapshotRepository.Latest(ctx, creator)

		Expect(err).To(MatchError(domain.ErrSnapshotNotFound))
	})

	It("should list creators with a published snapshot", func() {
		Expect(snapshotRepository.Publish(ctx, domain.Snapshot{Creator: creator, RenderedAt: time.Now()})).To(Succeed())

		creators, err := snapshotRepository.ListCreators(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(creators).To(ContainElement(creator))
	})
})

var _ = Describe("SnapshotKey", func() {
	It("should namespace the creator", func() {
		Expect(repositories.SnapshotKey("artist")).To(Equal("archive:snapshot:artist"))
	})
})

package video_fx

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"fitplan/internal/repositories"
	"fitplan/internal/services"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

var Module = fx.Provide(
	ProvideVideoCache,
	ProvideVideoSearchClient,
	ProvideVideoService,
)

func ProvideVideoCache(rdb *goredis.Client) services.VideoCache {
	return services.NewRedisVideoCache(rdb)
}

func ProvideVideoSearchClient() (utils.VideoSearchClient, error) {
	return utils.NewYouTubeSearchClient()
}

func ProvideVideoService(
	exerciseRepo repositories.ExerciseRepositoryInterface,
	cache services.VideoCache,
	search utils.VideoSearchClient,
	log *logger.Logger,
) services.VideoServiceInterface {
	return services.NewVideoService(exerciseRepo, cache, search, log)
}

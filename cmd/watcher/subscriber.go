package main

import (
	"context"
	"log/slog"

	"weverse-watcher/internal/domain/entity"
	"weverse-watcher/internal/usecase/stream"
)

// loggingSubscriber is the default sink: it logs every event the
// engine emits. Deployments that feed a message bus or chat webhook
// replace this with their own stream.Subscriber.
type loggingSubscriber struct {
	stream.NopSubscriber
	logger *slog.Logger
}

func newLoggingSubscriber(logger *slog.Logger) *loggingSubscriber {
	return &loggingSubscriber{logger: logger}
}

func (s *loggingSubscriber) OnNewNotification(ctx context.Context, n *entity.Notification) error {
	s.logger.InfoContext(ctx, "new notification",
		slog.Int64("id", n.ID),
		slog.String("type", string(n.Type)),
		slog.String("community", n.Community.Name),
		slog.String("author", n.Author.ProfileName))
	return nil
}

func (s *loggingSubscriber) OnNewComment(ctx context.Context, c *entity.Comment) error {
	s.logger.InfoContext(ctx, "new artist comment",
		slog.String("id", c.ID),
		slog.String("post_id", c.PostID),
		slog.String("author", c.Author.ProfileName))
	return nil
}

func (s *loggingSubscriber) OnNewPost(ctx context.Context, p *entity.Post) error {
	s.logger.InfoContext(ctx, "new post",
		slog.String("id", p.ID),
		slog.String("author", p.Author.ProfileName),
		slog.String("url", p.ShareURL))
	return nil
}

func (s *loggingSubscriber) OnNewMedia(ctx context.Context, m entity.Media) error {
	switch media := m.(type) {
	case entity.ImageMedia:
		s.logger.InfoContext(ctx, "new image media",
			slog.String("id", media.ID), slog.String("title", media.Title))
	case entity.VideoMedia:
		s.logger.InfoContext(ctx, "new video media",
			slog.String("id", media.ID), slog.String("title", media.Title))
	case entity.YoutubeMedia:
		s.logger.InfoContext(ctx, "new youtube media",
			slog.String("id", media.ID), slog.String("title", media.Title))
	}
	return nil
}

func (s *loggingSubscriber) OnNewMoment(ctx context.Context, m entity.Moment) error {
	switch moment := m.(type) {
	case entity.VideoMoment:
		s.logger.InfoContext(ctx, "new moment",
			slog.String("id", moment.ID), slog.String("author", moment.Author.ProfileName))
	case entity.PhotoMoment:
		s.logger.InfoContext(ctx, "new moment",
			slog.String("id", moment.ID), slog.String("author", moment.Author.ProfileName))
	}
	return nil
}

func (s *loggingSubscriber) OnNewLive(ctx context.Context, l *entity.Live) error {
	s.logger.InfoContext(ctx, "new live broadcast",
		slog.String("id", l.ID),
		slog.String("title", l.Title))
	return nil
}

func (s *loggingSubscriber) OnNewNotice(ctx context.Context, n *entity.Notice) error {
	s.logger.InfoContext(ctx, "new notice",
		slog.Int64("id", n.ID),
		slog.String("title", n.Title))
	return nil
}

func (s *loggingSubscriber) OnException(ctx context.Context, err error) {
	s.logger.ErrorContext(ctx, "stream error", slog.Any("error", err))
}

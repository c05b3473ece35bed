package linkedin

import (
	"context"
	"fmt"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

// Publisher turns stored posts into LinkedIn member posts
type Publisher struct {
	client *Client
}

// NewPublisher creates a new LinkedIn publisher
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishInput represents input for publishing content
type PublishInput struct {
	AccessToken string
	PersonURN   string
	Post        *entity.Post
}

// PublishOutput represents output from publishing content
type PublishOutput struct {
	PostURN string
}

// Publish sends the post body with its hashtags appended as a public feed post
func (p *Publisher) Publish(ctx context.Context, in PublishInput) (*PublishOutput, error) {
	if err := in.Post.ValidateForPublish(); err != nil {
		return nil, err
	}

	out, err := p.client.CreatePost(ctx, in.AccessToken, BuildCreatePostInput(in.PersonURN, in.Post))
	if err != nil {
		return nil, fmt.Errorf("creating LinkedIn post: %w", err)
	}

	return &PublishOutput{PostURN: out.PostURN}, nil
}

// BuildCreatePostInput builds the Posts API payload for a post
func BuildCreatePostInput(author string, post *entity.Post) CreatePostInput {
	return CreatePostInput{
		Author:     author,
		Commentary: post.Commentary(),
		Visibility: VisibilityPublic,
		Distribution: Distribution{
			FeedDistribution:               FeedDistributionMain,
			TargetEntities:                 []string{},
			ThirdPartyDistributionChannels: []string{},
		},
		LifecycleState: LifecycleStatePublished,
	}
}

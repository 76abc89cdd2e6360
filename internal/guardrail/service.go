// Package guardrail manages Bedrock guardrails: validated create, partial update, delete,
// paginated listing, full reads, versioning, Terraform export and runtime evaluation.
package guardrail

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrockapi "github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/bedrock"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/events"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
	"github.com/rs/zerolog"
)

const (
	DefaultPageSize int32 = 100

	maxNameLength        = 50
	maxDescriptionLength = 200
	maxMessagingLength   = 500
)

var namePattern = regexp.MustCompile(`^[0-9a-zA-Z_-]+$`)

// Exporter renders a guardrail configuration as Terraform.
type Exporter interface {
	Export(cfg models.GuardrailConfig, resourceName string) (string, error)
}

type Service struct {
	guardrails bedrockapi.GuardrailAPI
	runtime    bedrockapi.RuntimeAPI
	exporter   Exporter
	publisher  events.Publisher
	pageSize   int32
	logger     *zerolog.Logger
}

func NewService(
	guardrails bedrockapi.GuardrailAPI,
	runtime bedrockapi.RuntimeAPI,
	exporter Exporter,
	publisher events.Publisher,
	pageSize int32,
	logger *zerolog.Logger,
) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		guardrails: guardrails,
		runtime:    runtime,
		exporter:   exporter,
		publisher:  publisher,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// Create validates the whole request locally, then creates the guardrail.
// Nothing is sent to Bedrock when validation fails.
func (s *Service) Create(ctx context.Context, req models.CreateRequest) (models.CreateResult, error) {
	set, err := validateCreate(req)
	if err != nil {
		return models.CreateResult{}, err
	}

	pc := toPolicyConfigs(set)
	input := &bedrock.CreateGuardrailInput{
		Name:                             aws.String(strings.TrimSpace(req.Name)),
		Description:                      optional(req.Description),
		BlockedInputMessaging:            aws.String(req.BlockedInputMessaging),
		BlockedOutputsMessaging:          aws.String(req.BlockedOutputsMessaging),
		ContentPolicyConfig:              pc.content,
		ContextualGroundingPolicyConfig:  pc.grounding,
		SensitiveInformationPolicyConfig: pc.sensitive,
		TopicPolicyConfig:                pc.topic,
		WordPolicyConfig:                 pc.word,
		KmsKeyId:                         optional(req.KMSKeyARN),
		CrossRegionConfig:                crossRegion(req.CrossRegionProfile),
		Tags:                             toTags(req.Tags),
	}

	s.logger.Info().
		Str("name", aws.ToString(input.Name)).
		Strs("policies", typeNames(set.Present())).
		Msg("creating guardrail")

	out, err := s.guardrails.CreateGuardrail(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", aws.ToString(input.Name)).Msg("failed to create guardrail")
		return models.CreateResult{}, upstream("CreateGuardrail", err)
	}

	result := models.CreateResult{
		ID:        aws.ToString(out.GuardrailId),
		ARN:       aws.ToString(out.GuardrailArn),
		Version:   aws.ToString(out.Version),
		CreatedAt: aws.ToTime(out.CreatedAt),
	}
	s.publish(ctx, events.GuardrailCreated, result.ID, result.Version, result)

	return result, nil
}

// Update applies a partial update. Bedrock replaces the whole document on update, so the
// current DRAFT is fetched and only the fields present in req are overlaid on it.
func (s *Service) Update(ctx context.Context, req models.UpdateRequest) (models.GuardrailConfig, error) {
	id := strings.TrimSpace(req.GuardrailID)
	if id == "" {
		return models.GuardrailConfig{}, &ValidationError{Field: "guardrail_id", Reason: "is required"}
	}
	if req.Empty() {
		return models.GuardrailConfig{}, &ValidationError{Field: "update", Reason: "no fields to update"}
	}

	incoming, removals, err := validateUpdate(req)
	if err != nil {
		return models.GuardrailConfig{}, err
	}

	current, err := s.guardrails.GetGuardrail(ctx, &bedrock.GetGuardrailInput{
		GuardrailIdentifier: aws.String(id),
		GuardrailVersion:    aws.String(models.DraftVersion),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to fetch guardrail for update")
		return models.GuardrailConfig{}, upstream("GetGuardrail", err)
	}

	merged := fromGetOutput(current)
	overlay(&merged, req)
	incoming.InheritTiers(merged.Policies)
	for _, block := range incoming.Blocks() {
		merged.Policies.Put(block)
	}
	for _, t := range removals {
		merged.Policies.Remove(t)
	}

	pc := toPolicyConfigs(merged.Policies)
	input := &bedrock.UpdateGuardrailInput{
		GuardrailIdentifier:              aws.String(id),
		Name:                             aws.String(merged.Name),
		Description:                      optional(merged.Description),
		BlockedInputMessaging:            aws.String(merged.BlockedInputMessaging),
		BlockedOutputsMessaging:          aws.String(merged.BlockedOutputsMessaging),
		ContentPolicyConfig:              pc.content,
		ContextualGroundingPolicyConfig:  pc.grounding,
		SensitiveInformationPolicyConfig: pc.sensitive,
		TopicPolicyConfig:                pc.topic,
		WordPolicyConfig:                 pc.word,
		AutomatedReasoningPolicyConfig:   toAutomatedReasoning(merged.AutomatedReasoning),
		KmsKeyId:                         optional(merged.KMSKeyARN),
		CrossRegionConfig:                crossRegion(merged.CrossRegionProfile),
	}

	s.logger.Info().
		Str("guardrailID", id).
		Strs("policies", typeNames(merged.Policies.Present())).
		Msg("updating guardrail")

	out, err := s.guardrails.UpdateGuardrail(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to update guardrail")
		return models.GuardrailConfig{}, upstream("UpdateGuardrail", err)
	}

	merged.Version = firstNonEmpty(aws.ToString(out.Version), merged.Version)
	merged.UpdatedAt = aws.ToTime(out.UpdatedAt)
	merged.Status = models.StatusUpdating
	merged.Tags = s.tags(ctx, merged.ARN)

	s.publish(ctx, events.GuardrailUpdated, merged.ID, merged.Version, merged)

	return merged, nil
}

// Delete removes a guardrail, or only one of its versions when version is set.
func (s *Service) Delete(ctx context.Context, id, version string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ValidationError{Field: "guardrail_id", Reason: "is required"}
	}

	s.logger.Info().Str("guardrailID", id).Str("version", version).Msg("deleting guardrail")

	_, err := s.guardrails.DeleteGuardrail(ctx, &bedrock.DeleteGuardrailInput{
		GuardrailIdentifier: aws.String(id),
		GuardrailVersion:    optional(strings.TrimSpace(version)),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to delete guardrail")
		return upstream("DeleteGuardrail", err)
	}

	s.publish(ctx, events.GuardrailDeleted, id, version, nil)
	return nil
}

// List drains every page before filtering, keeping the provider's order.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]models.GuardrailSummary, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	summaries := []models.GuardrailSummary{}
	var (
		token *string
		pages int
	)
	for {
		out, err := s.guardrails.ListGuardrails(ctx, &bedrock.ListGuardrailsInput{
			GuardrailIdentifier: optional(strings.TrimSpace(filter.GuardrailID)),
			MaxResults:          aws.Int32(pageSize),
			NextToken:           token,
		})
		if err != nil {
			s.logger.Error().Err(err).Int("pages", pages).Msg("failed to list guardrails")
			return nil, upstream("ListGuardrails", err)
		}
		pages++

		for _, g := range out.Guardrails {
			summaries = append(summaries, fromSummary(g))
		}

		if aws.ToString(out.NextToken) == "" {
			break
		}
		token = out.NextToken
	}

	s.logger.Debug().Int("pages", pages).Int("count", len(summaries)).Msg("listed guardrails")

	return filterSummaries(summaries, filter), nil
}

// Get reads one version (DRAFT when empty) with all policy blocks and tags.
func (s *Service) Get(ctx context.Context, id, version string) (models.GuardrailConfig, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.GuardrailConfig{}, &ValidationError{Field: "guardrail_id", Reason: "is required"}
	}

	out, err := s.guardrails.GetGuardrail(ctx, &bedrock.GetGuardrailInput{
		GuardrailIdentifier: aws.String(id),
		GuardrailVersion:    optional(strings.TrimSpace(version)),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to get guardrail")
		return models.GuardrailConfig{}, upstream("GetGuardrail", err)
	}

	cfg := fromGetOutput(out)
	cfg.Tags = s.tags(ctx, cfg.ARN)
	return cfg, nil
}

// CreateVersion snapshots the current DRAFT into a new immutable version.
func (s *Service) CreateVersion(ctx context.Context, id, description string) (models.GuardrailVersion, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.GuardrailVersion{}, &ValidationError{Field: "guardrail_id", Reason: "is required"}
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return models.GuardrailVersion{}, &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", maxDescriptionLength)}
	}

	out, err := s.guardrails.CreateGuardrailVersion(ctx, &bedrock.CreateGuardrailVersionInput{
		GuardrailIdentifier: aws.String(id),
		Description:         optional(description),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to create guardrail version")
		return models.GuardrailVersion{}, upstream("CreateGuardrailVersion", err)
	}

	version := models.GuardrailVersion{
		GuardrailID: firstNonEmpty(aws.ToString(out.GuardrailId), id),
		Version:     aws.ToString(out.Version),
	}
	s.publish(ctx, events.GuardrailVersionCreated, version.GuardrailID, version.Version, version)

	return version, nil
}

// ExportTerraform fetches the guardrail and renders it as an aws_bedrock_guardrail resource.
func (s *Service) ExportTerraform(ctx context.Context, id, version, resourceName string) (string, error) {
	cfg, err := s.Get(ctx, id, version)
	if err != nil {
		return "", err
	}
	return s.exporter.Export(cfg, resourceName)
}

func (s *Service) tags(ctx context.Context, arn string) map[string]string {
	if arn == "" {
		return nil
	}
	out, err := s.guardrails.ListTagsForResource(ctx, &bedrock.ListTagsForResourceInput{ResourceARN: aws.String(arn)})
	if err != nil {
		s.logger.Warn().Err(err).Str("arn", arn).Msg("failed to list guardrail tags")
		return nil
	}
	return fromTags(out.Tags)
}

// publish is best effort: the mutation already happened, so a failed event is only logged.
func (s *Service) publish(ctx context.Context, eventType events.Type, id, version string, payload any) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		GuardrailID: id,
		Version:     version,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", string(eventType)).Str("guardrailID", id).Msg("failed to publish change event")
	}
}

func overlay(cfg *models.GuardrailConfig, req models.UpdateRequest) {
	if req.Name != nil {
		cfg.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.BlockedInputMessaging != nil {
		cfg.BlockedInputMessaging = *req.BlockedInputMessaging
	}
	if req.BlockedOutputsMessaging != nil {
		cfg.BlockedOutputsMessaging = *req.BlockedOutputsMessaging
	}
	if req.KMSKeyARN != nil {
		cfg.KMSKeyARN = *req.KMSKeyARN
	}
	if req.CrossRegionProfile != nil {
		cfg.CrossRegionProfile = *req.CrossRegionProfile
	}
}

func filterSummaries(summaries []models.GuardrailSummary, filter models.ListFilter) []models.GuardrailSummary {
	name := strings.ToLower(strings.TrimSpace(filter.NameContains))
	status := strings.TrimSpace(filter.Status)
	if name == "" && status == "" {
		return summaries
	}

	filtered := []models.GuardrailSummary{}
	for _, g := range summaries {
		if name != "" && !strings.Contains(strings.ToLower(g.Name), name) {
			continue
		}
		if status != "" && !strings.EqualFold(string(g.Status), status) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

func typeNames(types []policy.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

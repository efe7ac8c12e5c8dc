package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/gflow/internal/execshell"
)

const (
	authSubcommandConstant                   = "auth"
	statusSubcommandConstant                 = "status"
	activeAccountFlagConstant                = "--active"
	pullRequestSubcommandConstant            = "pr"
	createSubcommandConstant                 = "create"
	listSubcommandConstant                   = "list"
	labelSubcommandConstant                  = "label"
	baseFlagConstant                         = "--base"
	headFlagConstant                         = "--head"
	titleFlagConstant                        = "--title"
	bodyFlagConstant                         = "--body"
	labelFlagConstant                        = "--label"
	stateFlagConstant                        = "--state"
	jsonFlagConstant                         = "--json"
	limitFlagConstant                        = "--limit"
	colorFlagConstant                        = "--color"
	descriptionFlagConstant                  = "--description"
	openStateValueConstant                   = "open"
	pullRequestJSONFieldsConstant            = "number,title,url,headRefName"
	labelJSONFieldsConstant                  = "name"
	pullRequestLookupLimitConstant           = 1
	labelListLimitConstant                   = 200
	pullRequestURLSegmentSeparatorConstant   = "/"
	repositoryPathFieldNameConstant          = "repository_path"
	titleFieldNameConstant                   = "title"
	baseBranchFieldNameConstant              = "base_branch"
	headBranchFieldNameConstant              = "head_branch"
	labelNameFieldNameConstant               = "label_name"
	requiredValueMessageConstant             = "value required"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	missingPullRequestURLMessageConstant     = "gh pr create returned no pull request url"
	malformedPullRequestURLTemplateConstant  = "unexpected pull request url %q"
	ensureAuthenticatedOperationNameConstant = OperationName("EnsureAuthenticated")
	createPullRequestOperationNameConstant   = OperationName("CreatePullRequest")
	findPullRequestOperationNameConstant     = OperationName("FindOpenPullRequest")
	ensureLabelOperationNameConstant         = OperationName("EnsureLabel")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequest represents minimal pull request details returned by GitHub CLI.
type PullRequest struct {
	Number      int
	Title       string
	URL         string
	HeadRefName string
}

// PullRequestCreateOptions configures CreatePullRequest invocations.
type PullRequestCreateOptions struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
	Labels     []string
}

// LabelDetails describes a repository label ensured before pull request creation.
type LabelDetails struct {
	Name        string
	Color       string
	Description string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates gh output could not be interpreted.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying cause.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// EnsureAuthenticated verifies the GitHub CLI holds an active authenticated account.
func (client *Client) EnsureAuthenticated(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			authSubcommandConstant,
			statusSubcommandConstant,
			activeAccountFlagConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: ensureAuthenticatedOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CreatePullRequest opens a pull request using gh pr create and returns its number and URL.
func (client *Client) CreatePullRequest(executionContext context.Context, repositoryPath string, options PullRequestCreateOptions) (PullRequest, error) {
	if validationError := requireValue(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return PullRequest{}, validationError
	}
	if validationError := requireValue(titleFieldNameConstant, options.Title); validationError != nil {
		return PullRequest{}, validationError
	}
	if validationError := requireValue(baseBranchFieldNameConstant, options.BaseBranch); validationError != nil {
		return PullRequest{}, validationError
	}
	if validationError := requireValue(headBranchFieldNameConstant, options.HeadBranch); validationError != nil {
		return PullRequest{}, validationError
	}

	arguments := []string{
		pullRequestSubcommandConstant,
		createSubcommandConstant,
		baseFlagConstant,
		options.BaseBranch,
		headFlagConstant,
		options.HeadBranch,
		titleFlagConstant,
		options.Title,
		bodyFlagConstant,
		options.Body,
	}
	for _, labelName := range options.Labels {
		arguments = append(arguments, labelFlagConstant, labelName)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return PullRequest{}, OperationError{Operation: createPullRequestOperationNameConstant, Cause: executionError}
	}

	pullRequestURL, pullRequestNumber, parseError := parsePullRequestURL(executionResult.StandardOutput)
	if parseError != nil {
		return PullRequest{}, ResponseDecodingError{Operation: createPullRequestOperationNameConstant, Cause: parseError}
	}

	return PullRequest{
		Number:      pullRequestNumber,
		Title:       options.Title,
		URL:         pullRequestURL,
		HeadRefName: options.HeadBranch,
	}, nil
}

// FindOpenPullRequest looks up an open pull request for the head and base branch pair.
// It returns nil when no open pull request matches.
func (client *Client) FindOpenPullRequest(executionContext context.Context, repositoryPath string, headBranch string, baseBranch string) (*PullRequest, error) {
	if validationError := requireValue(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return nil, validationError
	}
	if validationError := requireValue(headBranchFieldNameConstant, headBranch); validationError != nil {
		return nil, validationError
	}
	if validationError := requireValue(baseBranchFieldNameConstant, baseBranch); validationError != nil {
		return nil, validationError
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			listSubcommandConstant,
			stateFlagConstant,
			openStateValueConstant,
			headFlagConstant,
			headBranch,
			baseFlagConstant,
			baseBranch,
			jsonFlagConstant,
			pullRequestJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(pullRequestLookupLimitConstant),
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: findPullRequestOperationNameConstant, Cause: executionError}
	}

	var response []struct {
		Number      int    `json:"number"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		HeadRefName string `json:"headRefName"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: findPullRequestOperationNameConstant, Cause: decodingError}
	}
	if len(response) == 0 {
		return nil, nil
	}

	return &PullRequest{
		Number:      response[0].Number,
		Title:       response[0].Title,
		URL:         response[0].URL,
		HeadRefName: response[0].HeadRefName,
	}, nil
}

// EnsureLabel creates the label when the repository does not already define it.
func (client *Client) EnsureLabel(executionContext context.Context, repositoryPath string, label LabelDetails) error {
	if validationError := requireValue(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return validationError
	}
	if validationError := requireValue(labelNameFieldNameConstant, label.Name); validationError != nil {
		return validationError
	}

	listDetails := execshell.CommandDetails{
		Arguments: []string{
			labelSubcommandConstant,
			listSubcommandConstant,
			jsonFlagConstant,
			labelJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(labelListLimitConstant),
		},
		WorkingDirectory: repositoryPath,
	}

	listResult, listError := client.executor.ExecuteGitHubCLI(executionContext, listDetails)
	if listError != nil {
		return OperationError{Operation: ensureLabelOperationNameConstant, Cause: listError}
	}

	var existingLabels []struct {
		Name string `json:"name"`
	}

	decodingError := json.Unmarshal([]byte(listResult.StandardOutput), &existingLabels)
	if decodingError != nil {
		return ResponseDecodingError{Operation: ensureLabelOperationNameConstant, Cause: decodingError}
	}
	for _, existingLabel := range existingLabels {
		if strings.EqualFold(existingLabel.Name, label.Name) {
			return nil
		}
	}

	createArguments := []string{labelSubcommandConstant, createSubcommandConstant, label.Name}
	if len(strings.TrimSpace(label.Color)) > 0 {
		createArguments = append(createArguments, colorFlagConstant, label.Color)
	}
	if len(strings.TrimSpace(label.Description)) > 0 {
		createArguments = append(createArguments, descriptionFlagConstant, label.Description)
	}

	createDetails := execshell.CommandDetails{
		Arguments:        createArguments,
		WorkingDirectory: repositoryPath,
	}

	_, createError := client.executor.ExecuteGitHubCLI(executionContext, createDetails)
	if createError != nil {
		return OperationError{Operation: ensureLabelOperationNameConstant, Cause: createError}
	}
	return nil
}

func parsePullRequestURL(commandOutput string) (string, int, error) {
	outputLines := strings.Fields(strings.TrimSpace(commandOutput))
	if len(outputLines) == 0 {
		return "", 0, errors.New(missingPullRequestURLMessageConstant)
	}

	pullRequestURL := outputLines[len(outputLines)-1]
	urlSegments := strings.Split(strings.TrimRight(pullRequestURL, pullRequestURLSegmentSeparatorConstant), pullRequestURLSegmentSeparatorConstant)
	numberSegment := urlSegments[len(urlSegments)-1]
	pullRequestNumber, conversionError := strconv.Atoi(numberSegment)
	if conversionError != nil {
		return "", 0, fmt.Errorf(malformedPullRequestURLTemplateConstant, pullRequestURL)
	}
	return pullRequestURL, pullRequestNumber, nil
}

func requireValue(fieldName string, value string) error {
	if len(strings.TrimSpace(value)) == 0 {
		return InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	return nil
}

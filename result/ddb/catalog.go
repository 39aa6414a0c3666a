// Package ddb implements result.Catalog on Amazon DynamoDB.
//
// Every (namespace, kind) pair is one append-only log. Entries get
// monotonically increasing sequence numbers through conditional writes, so
// concurrent publishers never overwrite each other.
//
// Table schema:
//   - Partition key: log (string) - "<namespace>#<kind>"
//   - Sort key: seq (number)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name kdd-results \
//	  --attribute-definitions AttributeName=log,AttributeType=S AttributeName=seq,AttributeType=N \
//	  --key-schema AttributeName=log,KeyType=HASH AttributeName=seq,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/kddgo/result"
)

// Client is the subset of *dynamodb.Client the catalog needs.
type Client interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ErrConcurrentModification is returned by Record when every retry lost the
// race for the next sequence number.
var ErrConcurrentModification = errors.New("ddb: concurrent modification detected")

type options struct {
	namespace  string
	maxRetries int
}

// Option configures a Catalog.
type Option func(*options)

// WithNamespace isolates this catalog's logs from other users of the table.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithMaxRetries sets how often Record retries after losing a race.
// Default: 5.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// Catalog implements result.Catalog.
type Catalog struct {
	client     Client
	table      string
	namespace  string
	maxRetries int
}

var _ result.Catalog = (*Catalog)(nil)

// NewCatalog returns a catalog on table.
func NewCatalog(client Client, table string, optFns ...Option) *Catalog {
	opts := options{namespace: "default", maxRetries: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Catalog{
		client:     client,
		table:      table,
		namespace:  opts.namespace,
		maxRetries: max(opts.maxRetries, 0),
	}
}

func (c *Catalog) log(kind result.Kind) string {
	return c.namespace + "#" + string(kind)
}

// Record appends e with the next sequence number of its kind.
func (c *Catalog) Record(ctx context.Context, e result.Entry) error {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		seq, _, err := c.latest(ctx, e.Handle.Kind)
		if err != nil {
			return err
		}

		item := marshalEntry(e)
		item["log"] = &types.AttributeValueMemberS{Value: c.log(e.Handle.Kind)}
		item["seq"] = &types.AttributeValueMemberN{Value: strconv.FormatUint(seq+1, 10)}

		_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(c.table),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(seq)"),
		})
		if err == nil {
			return nil
		}
		var condErr *types.ConditionalCheckFailedException
		if !errors.As(err, &condErr) {
			return fmt.Errorf("ddb: record %s: %w", e.Handle, err)
		}
	}
	return ErrConcurrentModification
}

// Latest returns the entry with the highest sequence number.
func (c *Catalog) Latest(ctx context.Context, kind result.Kind) (result.Entry, error) {
	seq, e, err := c.latest(ctx, kind)
	if err != nil {
		return result.Entry{}, err
	}
	if seq == 0 {
		return result.Entry{}, result.ErrNotFound
	}
	return e, nil
}

func (c *Catalog) latest(ctx context.Context, kind result.Kind) (uint64, result.Entry, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("#log = :log"),
		ExpressionAttributeNames: map[string]string{
			"#log": "log",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":log": &types.AttributeValueMemberS{Value: c.log(kind)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, result.Entry{}, fmt.Errorf("ddb: query %s: %w", kind, err)
	}
	if len(resp.Items) == 0 {
		return 0, result.Entry{}, nil
	}
	return unmarshalEntry(resp.Items[0])
}

// List returns every entry of kind in sequence order.
func (c *Catalog) List(ctx context.Context, kind result.Kind) ([]result.Entry, error) {
	p := dynamodb.NewQueryPaginator(c.client, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("#log = :log"),
		ExpressionAttributeNames: map[string]string{
			"#log": "log",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":log": &types.AttributeValueMemberS{Value: c.log(kind)},
		},
		ScanIndexForward: aws.Bool(true),
	})

	var out []result.Entry
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ddb: list %s: %w", kind, err)
		}
		for _, item := range page.Items {
			_, e, err := unmarshalEntry(item)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func marshalEntry(e result.Entry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"handle":      &types.AttributeValueMemberS{Value: e.Handle.String()},
		"size":        &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Size, 10)},
		"compression": &types.AttributeValueMemberN{Value: strconv.Itoa(int(e.Compression))},
		"codec":       &types.AttributeValueMemberS{Value: e.Codec},
		"published":   &types.AttributeValueMemberS{Value: e.Published.UTC().Format(time.RFC3339Nano)},
	}
}

func unmarshalEntry(item map[string]types.AttributeValue) (uint64, result.Entry, error) {
	var e result.Entry
	bad := func(attr string) error {
		return fmt.Errorf("ddb: invalid %s attribute", attr)
	}

	seqAttr, ok := item["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, e, bad("seq")
	}
	seq, err := strconv.ParseUint(seqAttr.Value, 10, 64)
	if err != nil {
		return 0, e, bad("seq")
	}

	handleAttr, ok := item["handle"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, e, bad("handle")
	}
	if e.Handle, err = result.ParseHandle(handleAttr.Value); err != nil {
		return 0, e, err
	}

	if a, ok := item["size"].(*types.AttributeValueMemberN); ok {
		e.Size, _ = strconv.ParseInt(a.Value, 10, 64)
	}
	if a, ok := item["compression"].(*types.AttributeValueMemberN); ok {
		n, _ := strconv.Atoi(a.Value)
		e.Compression = result.Compression(n)
	}
	if a, ok := item["codec"].(*types.AttributeValueMemberS); ok {
		e.Codec = a.Value
	}
	if a, ok := item["published"].(*types.AttributeValueMemberS); ok {
		e.Published, _ = time.Parse(time.RFC3339Nano, a.Value)
	}
	return seq, e, nil
}

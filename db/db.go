package db

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/melodygen/model"
	"github.com/jsphweid/melodygen/util"
)

// DynamoDB refuses BatchGetItem requests with more keys than this.
const maxBatchKeys = 100

const maxBatchAttempts = 5

const defaultBackoff = 50 * time.Millisecond

var ErrUnprocessedKeys = errors.New("DynamoDB left keys unprocessed")

type Catalog interface {
	GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error)
}

type DynamoCatalog struct {
	client  dynamodbiface.DynamoDBAPI
	table   string
	backoff time.Duration
}

func NewDynamoCatalog(endpoint string, table string) (*DynamoCatalog, error) {
	cfg := &aws.Config{}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.Region = aws.String("localhost")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return &DynamoCatalog{client: dynamodb.New(sess), table: table, backoff: defaultBackoff}, nil
}

func NewDynamoCatalogWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoCatalog {
	return &DynamoCatalog{client: client, table: table, backoff: defaultBackoff}
}

func parseMetadata(item map[string]*dynamodb.AttributeValue) model.MidiMetadata {
	var s model.MidiMetadata
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		s.Year = uint(year)
	}
	s.Artist = stringAttr(item, "Artist")
	s.Release = stringAttr(item, "Release")
	s.Title = stringAttr(item, "Title")
	return s
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func (c *DynamoCatalog) GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error) {
	res := make(map[string]model.MidiMetadata)

	// the same song can sit in more than one directory
	unique := make(map[string]bool)
	for _, filename := range filenames {
		unique[filename] = true
	}

	for _, batch := range util.Chunk(util.GetKeys(unique), maxBatchKeys) {
		var keys []map[string]*dynamodb.AttributeValue
		for _, filename := range batch {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(filename)},
			})
		}

		request := map[string]*dynamodb.KeysAndAttributes{c.table: {Keys: keys}}
		for attempt := 0; countKeys(request) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return res, fmt.Errorf("%v of %v keys: %w", countKeys(request), len(keys), ErrUnprocessedKeys)
			}
			if attempt > 0 {
				time.Sleep(time.Duration(attempt) * c.backoff)
			}

			out, err := c.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return res, fmt.Errorf("error from DynamoDB: %w", err)
			}
			for _, item := range out.Responses[c.table] {
				pk := stringAttr(item, "PK")
				if pk == "" {
					continue
				}
				res[pk] = parseMetadata(item)
			}
			request = out.UnprocessedKeys
		}
	}

	return res, nil
}

func countKeys(request map[string]*dynamodb.KeysAndAttributes) int {
	var n int
	for _, ka := range request {
		if ka != nil {
			n += len(ka.Keys)
		}
	}
	return n
}

// Label attaches whatever metadata the catalog has to each name. A nil
// catalog leaves the plain names; on error, names found before it are kept.
func Label(c Catalog, names []string) ([]model.SourceFile, error) {
	res := make([]model.SourceFile, 0, len(names))
	for _, name := range names {
		res = append(res, model.SourceFile{Name: name})
	}
	if c == nil || len(names) == 0 {
		return res, nil
	}

	metadatas, err := c.GetMidiMetadatas(names)
	for i := range res {
		if m, ok := metadatas[res[i].Name]; ok {
			m := m
			res[i].Metadata = &m
		}
	}
	return res, err
}

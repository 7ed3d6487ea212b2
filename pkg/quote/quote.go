package quote

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/models"
	"wallet_transfer_back/pkg/cache"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

var ErrBadRate = errors.New("некорректный курс")

// Quoter получает курс монеты к фиату через CoinGecko и кэширует его
type Quoter struct {
	client *resty.Client
	apiKey string
	cache  *cache.RateCache
	log    logrus.FieldLogger
}

func NewQuoter(baseURL, apiKey string, rates *cache.RateCache, log logrus.FieldLogger) *Quoter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Quoter{
		client: resty.New().SetBaseURL(baseURL).SetHeader("Accept", "application/json"),
		apiKey: apiKey,
		cache:  rates,
		log:    log,
	}
}

// Price курс одной монеты в фиате, например Price(ctx, "eth", "usd")
func (q *Quoter) Price(ctx context.Context, coin, fiat string) (float64, error) {
	id := currencyID(coin)
	fiat = strings.ToLower(fiat)
	key := id + "_" + fiat

	if rate, found := q.cache.Get(key); found {
		return rate, nil
	}

	req := q.client.R().
		SetContext(ctx).
		SetQueryParam("ids", id).
		SetQueryParam("vs_currencies", fiat).
		SetResult(map[string]map[string]float64{})
	if q.apiKey != "" {
		req.SetHeader("x-cg-demo-api-key", q.apiKey)
	}

	resp, err := req.Get("/simple/price")
	if err != nil {
		return 0, errors.Wrap(err, "coingecko request")
	}
	if resp.IsError() {
		return 0, errors.Errorf("coingecko responded %s", resp.Status())
	}

	data := *resp.Result().(*map[string]map[string]float64)
	rate := data[id][fiat]
	if rate <= 0 {
		return 0, errors.Wrap(ErrBadRate, key)
	}

	q.cache.Set(key, rate)
	q.log.WithFields(logrus.Fields{"pair": key, "rate": rate}).Debug("Курс получен")
	return rate, nil
}

// Convert переводит сумму в монете в фиат
func (q *Quoter) Convert(ctx context.Context, req models.ConvertRequest) (models.ConvertResponse, error) {
	if req.From == "" || req.To == "" || req.Amount < 0 {
		return models.ConvertResponse{}, errors.New("invalid convert request")
	}
	rate, err := q.Price(ctx, req.From, req.To)
	if err != nil {
		return models.ConvertResponse{}, err
	}
	return models.ConvertResponse{
		ConvertedAmount: req.Amount * rate,
		Rate:            rate,
		Currency:        strings.ToUpper(req.To),
	}, nil
}

func currencyID(symbol string) string {
	switch strings.ToLower(symbol) {
	case "eth":
		return "ethereum"
	case "usdt":
		return "tether"
	case "btc":
		return "bitcoin"
	case "matic", "pol":
		return "polygon-ecosystem-token"
	case "bnb":
		return "binancecoin"
	default:
		return strings.ToLower(symbol)
	}
}

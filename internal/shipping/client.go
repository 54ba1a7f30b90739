package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pinkbella/storefront/internal/shared"
)

// Option is one priced shipping service returned by the carrier API.
type Option struct {
	ServiceID     int64   `json:"service_id"`
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimated_days"`
}

// Sender identifies the store on shipment submissions.
type Sender struct {
	Name         string
	Phone        string
	Email        string
	Document     string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	Region       string
	PostalCode   string
}

// Recipient is the shipment destination contact.
type Recipient struct {
	Name         string
	Phone        string
	Email        string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	Region       string
	PostalCode   string
}

// DeclaredItem appears on the shipment's declaration of contents.
type DeclaredItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// ShipmentRequest describes a finalized shipment submitted for a label.
type ShipmentRequest struct {
	Recipient      Recipient
	ServiceID      int64
	Package        Package
	InsuranceValue float64
	Items          []DeclaredItem
	OrderID        int64
}

// ShipmentLabel is the carrier's reference for a submitted shipment.
type ShipmentLabel struct {
	LabelID  string
	Protocol string
	Price    float64
}

// TrackingState is the carrier's current view of one label.
type TrackingState struct {
	Status   string
	Tracking string
}

// Client wraps the carrier aggregation HTTP API.
type Client struct {
	baseURL          string
	token            string
	contactEmail     string
	originPostalCode string
	sender           Sender
	httpClient       *http.Client
}

// ClientConfig groups the settings needed to reach the carrier API.
type ClientConfig struct {
	BaseURL          string
	Token            string
	ContactEmail     string
	OriginPostalCode string
	Sender           Sender
}

// NewClient constructs a new client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		token:            cfg.Token,
		contactEmail:     cfg.ContactEmail,
		originPostalCode: cfg.OriginPostalCode,
		sender:           cfg.Sender,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type postalCodeRef struct {
	PostalCode string `json:"postal_code"`
}

type volume struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

type quoteRequest struct {
	From    postalCodeRef `json:"from"`
	To      postalCodeRef `json:"to"`
	Volumes []volume      `json:"volumes"`
	Options struct {
		Receipt bool `json:"receipt"`
		OwnHand bool `json:"own_hand"`
	} `json:"options"`
}

type quoteService struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Price        json.Number `json:"price"`
	DeliveryTime json.Number `json:"delivery_time"`
	Company      struct {
		Name string `json:"name"`
	} `json:"company"`
	Error string `json:"error"`
}

// Quote requests priced shipping options for a parcel. Services the
// carrier flags with an error are filtered out; an empty result is not an
// error here, callers decide how to treat it.
func (c *Client) Quote(ctx context.Context, destinationPostalCode string, pkg Package) ([]Option, error) {
	body := quoteRequest{
		From:    postalCodeRef{PostalCode: c.originPostalCode},
		To:      postalCodeRef{PostalCode: destinationPostalCode},
		Volumes: []volume{{Height: pkg.HeightCm, Width: pkg.WidthCm, Length: pkg.LengthCm, Weight: pkg.WeightKg}},
	}

	var services []quoteService
	if err := c.post(ctx, "/me/shipment/calculate", body, &services); err != nil {
		return nil, err
	}

	var options []Option
	for _, svc := range services {
		if svc.Error != "" {
			continue
		}
		price, err := strconv.ParseFloat(svc.Price.String(), 64)
		if err != nil {
			continue
		}
		days, _ := strconv.Atoi(svc.DeliveryTime.String())
		options = append(options, Option{
			ServiceID:     svc.ID,
			Carrier:       svc.Company.Name,
			Service:       svc.Name,
			Price:         price,
			EstimatedDays: days,
		})
	}
	return options, nil
}

type shipmentContact struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Document   string `json:"document,omitempty"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	CountryID  string `json:"country_id"`
	PostalCode string `json:"postal_code"`
	StateAbbr  string `json:"state_abbr"`
}

type declaredProduct struct {
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	UnitaryValue string `json:"unitary_value"`
}

type createShipmentRequest struct {
	From    shipmentContact `json:"from"`
	To      shipmentContact `json:"to"`
	Service int64           `json:"service"`
	Volumes []volume        `json:"volumes"`
	Options struct {
		InsuranceValue float64 `json:"insurance_value"`
		Receipt        bool    `json:"receipt"`
		OwnHand        bool    `json:"own_hand"`
		Reverse        bool    `json:"reverse"`
		NonCommercial  bool    `json:"non_commercial"`
		Platform       string  `json:"platform"`
		Tags           []struct {
			Tag string `json:"tag"`
		} `json:"tags,omitempty"`
	} `json:"options"`
	Products []declaredProduct `json:"products"`
}

type createShipmentResponse struct {
	ID       string      `json:"id"`
	Protocol string      `json:"protocol"`
	Price    json.Number `json:"price"`
}

// CreateShipment submits a finalized shipment and returns the carrier's
// label reference.
func (c *Client) CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentLabel, error) {
	body := createShipmentRequest{
		From:    contactFromSender(c.sender),
		To:      contactFromRecipient(req.Recipient),
		Service: req.ServiceID,
		Volumes: []volume{{
			Height: req.Package.HeightCm,
			Width:  req.Package.WidthCm,
			Length: req.Package.LengthCm,
			Weight: req.Package.WeightKg,
		}},
	}
	body.Options.InsuranceValue = req.InsuranceValue
	body.Options.NonCommercial = true
	body.Options.Platform = c.sender.Name
	body.Options.Tags = []struct {
		Tag string `json:"tag"`
	}{{Tag: fmt.Sprintf("order-%d", req.OrderID)}}
	for _, item := range req.Items {
		body.Products = append(body.Products, declaredProduct{
			Name:         item.Name,
			Quantity:     strconv.Itoa(item.Quantity),
			UnitaryValue: strconv.FormatFloat(item.UnitPrice, 'f', 2, 64),
		})
	}

	var resp createShipmentResponse
	if err := c.post(ctx, "/me/cart", body, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, shared.Dependency("carrier", "shipment submission returned no label id", nil)
	}

	price, _ := strconv.ParseFloat(resp.Price.String(), 64)
	return &ShipmentLabel{LabelID: resp.ID, Protocol: resp.Protocol, Price: price}, nil
}

type trackingEntry struct {
	Status   string `json:"status"`
	Tracking string `json:"tracking"`
}

// Tracking fetches the carrier's current state for each label id.
func (c *Client) Tracking(ctx context.Context, labelIDs []string) (map[string]TrackingState, error) {
	body := map[string][]string{"orders": labelIDs}

	var entries map[string]trackingEntry
	if err := c.post(ctx, "/me/shipment/tracking", body, &entries); err != nil {
		return nil, err
	}

	states := make(map[string]TrackingState, len(entries))
	for id, entry := range entries {
		states[id] = TrackingState{Status: entry.Status, Tracking: entry.Tracking}
	}
	return states, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", fmt.Sprintf("PinkBella Storefront (%s)", c.contactEmail))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.Dependency("carrier", "request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return shared.Dependency("carrier", fmt.Sprintf("status %d on %s", resp.StatusCode, path), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return shared.Dependency("carrier", "decode response", err)
	}
	return nil
}

func contactFromSender(s Sender) shipmentContact {
	return shipmentContact{
		Name:       s.Name,
		Phone:      s.Phone,
		Email:      s.Email,
		Document:   s.Document,
		Address:    s.Street,
		Number:     s.Number,
		Complement: s.Complement,
		District:   s.Neighborhood,
		City:       s.City,
		CountryID:  "BR",
		PostalCode: s.PostalCode,
		StateAbbr:  s.Region,
	}
}

func contactFromRecipient(r Recipient) shipmentContact {
	return shipmentContact{
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.Neighborhood,
		City:       r.City,
		CountryID:  "BR",
		PostalCode: r.PostalCode,
		StateAbbr:  r.Region,
	}
}

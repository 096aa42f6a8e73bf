package midtrans

import (
	midtransgo "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// item names longer than this are rejected by snap
const maxItemName = 50

//go:generate mockgen -source=midtrans_service.go -destination=../mock/midtrans/midtrans_service_mock.go -package=mock
type Service interface {
	CreateTransactionToken(req *CreateTransactionRequest) (*CreateTransactionResponse, error)
}

type service struct {
	client snap.Client
}

func NewService(serverKey string, isProduction bool) Service {
	env := midtransgo.Sandbox
	if isProduction {
		env = midtransgo.Production
	}

	c := snap.Client{}
	c.New(serverKey, env)

	return &service{
		client: c,
	}
}

func (s *service) CreateTransactionToken(req *CreateTransactionRequest) (*CreateTransactionResponse, error) {
	snapResp, err := s.client.CreateTransaction(toSnapRequest(req))
	if err != nil {
		return nil, err
	}

	return &CreateTransactionResponse{
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func toSnapRequest(req *CreateTransactionRequest) *snap.Request {
	snapReq := &snap.Request{
		TransactionDetails: midtransgo.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
	}

	if req.Customer != nil {
		snapReq.CustomerDetail = &midtransgo.CustomerDetails{
			FName: req.Customer.FirstName,
			LName: req.Customer.LastName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		}
	}

	items := make([]midtransgo.ItemDetails, 0, len(req.Items))
	for _, item := range req.Items {
		name := item.Name
		if len([]rune(name)) > maxItemName {
			name = string([]rune(name)[:maxItemName])
		}
		items = append(items, midtransgo.ItemDetails{
			ID:    item.ID,
			Price: item.Price,
			Qty:   item.Qty,
			Name:  name,
		})
	}
	snapReq.Items = &items

	fields := []*string{&snapReq.CustomField1, &snapReq.CustomField2, &snapReq.CustomField3}
	for i, v := range req.CustomFields {
		if i >= len(fields) {
			break
		}
		*fields[i] = v
	}

	return snapReq
}

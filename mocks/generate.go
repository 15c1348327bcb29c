package mocks

//go:generate mockgen -destination=./mock_draw_observer.go -package=mocks -mock_names=Observer=MockDrawObserver github.com/rxtech-lab/argo-kline/internal/draw Observer
//go:generate mockgen -destination=./mock_observer.go -package=mocks -mock_names=Observer=MockObserver github.com/rxtech-lab/argo-kline/internal/chart Observer
//go:generate mockgen -destination=./mock_frame_requester.go -package=mocks -mock_names=FrameRequester=MockFrameRequester github.com/rxtech-lab/argo-kline/internal/chart FrameRequester

package email

func SetBaseURL(s Service, url string) {
	s.(*resendService).baseURL = url
}
